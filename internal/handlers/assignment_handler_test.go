package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/volunteerhub/volunteerhub-backend/internal/models"
	"github.com/volunteerhub/volunteerhub-backend/internal/repositories/memory"
	"github.com/volunteerhub/volunteerhub-backend/internal/services"
)

type assignmentHandlerFixture struct {
	router *gin.Engine
	events *memory.EventRepository
	users  *memory.UserRepository
}

func newAssignmentHandlerFixture(t *testing.T) *assignmentHandlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	assignments := memory.NewAssignmentRepository()
	events := memory.NewEventRepository()
	users := memory.NewUserRepository()
	profiles := memory.NewProfileRepository()
	history := memory.NewHistoryRepository()

	historySvc := services.NewHistoryService(history, events)
	assignmentSvc := services.NewAssignmentService(assignments, events, users, historySvc, zap.NewNop())
	matchingSvc := services.NewMatchingService(profiles, events)

	h := NewAssignmentHandler(assignmentSvc, matchingSvc, zap.NewNop())

	router := gin.New()
	api := router.Group("/api/assignments")
	{
		api.POST("", h.Create)
		api.GET("/volunteers/:userId", h.ListForVolunteer)
		api.GET("/history", h.ListAll)
		api.GET("/:id", h.GetByID)
		api.PATCH("/:id/status", h.UpdateStatus)
	}

	return &assignmentHandlerFixture{router: router, events: events, users: users}
}

func (f *assignmentHandlerFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *assignmentHandlerFixture) seedEvent(t *testing.T, needed, assigned int, date time.Time) *models.Event {
	t.Helper()
	event := &models.Event{
		EventName:          "Food Drive - Warehouse",
		Location:           "Houston, TX",
		EventDate:          date,
		NeededVolunteers:   needed,
		AssignedVolunteers: assigned,
	}
	require.NoError(t, f.events.Create(context.Background(), event))
	return event
}

func TestCreateAssignment(t *testing.T) {
	f := newAssignmentHandlerFixture(t)
	event := f.seedEvent(t, 3, 0, time.Now().Add(48*time.Hour))
	userID := primitive.NewObjectID()

	rec := f.do(t, http.MethodPost, "/api/assignments", models.CreateAssignmentRequest{
		UserID:     userID.Hex(),
		EventID:    event.ID.Hex(),
		MatchScore: 4,
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Message    string                 `json:"message"`
		Assignment *models.AssignmentView `json:"assignment"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Volunteer matched successfully", resp.Message)
	require.NotNil(t, resp.Assignment)
	assert.Equal(t, models.StatusAssigned, resp.Assignment.Status)
	assert.Equal(t, 4, resp.Assignment.MatchScore)
	require.NotNil(t, resp.Assignment.Event)
	assert.Equal(t, 1, resp.Assignment.Event.AssignedVolunteers)
}

func TestCreateAssignment_MalformedIDs(t *testing.T) {
	f := newAssignmentHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/api/assignments", models.CreateAssignmentRequest{
		UserID:  "nope",
		EventID: "also-nope",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid userId or eventId")
}

func TestCreateAssignment_EventNotFound(t *testing.T) {
	f := newAssignmentHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/api/assignments", models.CreateAssignmentRequest{
		UserID:  primitive.NewObjectID().Hex(),
		EventID: primitive.NewObjectID().Hex(),
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Event not found")
}

func TestCreateAssignment_FullEventConflicts(t *testing.T) {
	f := newAssignmentHandlerFixture(t)
	event := f.seedEvent(t, 1, 1, time.Now().Add(48*time.Hour))

	rec := f.do(t, http.MethodPost, "/api/assignments", models.CreateAssignmentRequest{
		UserID:  primitive.NewObjectID().Hex(),
		EventID: event.ID.Hex(),
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "full")
}

func TestCreateAssignment_DuplicatePairConflicts(t *testing.T) {
	f := newAssignmentHandlerFixture(t)
	event := f.seedEvent(t, 3, 0, time.Now().Add(48*time.Hour))
	req := models.CreateAssignmentRequest{
		UserID:  primitive.NewObjectID().Hex(),
		EventID: event.ID.Hex(),
	}

	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/api/assignments", req).Code)

	rec := f.do(t, http.MethodPost, "/api/assignments", req)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already assigned")
}

func TestListVolunteerAssignments_DefaultsToUpcoming(t *testing.T) {
	f := newAssignmentHandlerFixture(t)
	userID := primitive.NewObjectID()
	upcoming := f.seedEvent(t, 3, 0, time.Now().Add(24*time.Hour))
	past := f.seedEvent(t, 3, 0, time.Now().Add(-24*time.Hour))

	for _, event := range []*models.Event{upcoming, past} {
		rec := f.do(t, http.MethodPost, "/api/assignments", models.CreateAssignmentRequest{
			UserID:  userID.Hex(),
			EventID: event.ID.Hex(),
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := f.do(t, http.MethodGet, "/api/assignments/volunteers/"+userID.Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var views []*models.AssignmentView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, upcoming.ID, views[0].EventID)

	rec = f.do(t, http.MethodGet, "/api/assignments/volunteers/"+userID.Hex()+"?tab=past", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, past.ID, views[0].EventID)
}

func TestListVolunteerAssignments_InvalidUserID(t *testing.T) {
	f := newAssignmentHandlerFixture(t)

	rec := f.do(t, http.MethodGet, "/api/assignments/volunteers/not-an-id", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateAssignmentStatus(t *testing.T) {
	f := newAssignmentHandlerFixture(t)
	event := f.seedEvent(t, 3, 0, time.Now().Add(48*time.Hour))

	created := f.do(t, http.MethodPost, "/api/assignments", models.CreateAssignmentRequest{
		UserID:  primitive.NewObjectID().Hex(),
		EventID: event.ID.Hex(),
	})
	require.Equal(t, http.StatusCreated, created.Code)

	var resp struct {
		Assignment *models.AssignmentView `json:"assignment"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &resp))

	path := fmt.Sprintf("/api/assignments/%s/status", resp.Assignment.ID.Hex())
	rec := f.do(t, http.MethodPatch, path, models.UpdateStatusRequest{Status: models.StatusConfirmed})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Status updated")
	assert.Contains(t, rec.Body.String(), string(models.StatusConfirmed))
}

func TestUpdateAssignmentStatus_NotFound(t *testing.T) {
	f := newAssignmentHandlerFixture(t)

	path := fmt.Sprintf("/api/assignments/%s/status", primitive.NewObjectID().Hex())
	rec := f.do(t, http.MethodPatch, path, models.UpdateStatusRequest{Status: models.StatusConfirmed})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPatch, "/api/assignments/garbage/status", models.UpdateStatusRequest{Status: models.StatusConfirmed})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateAssignmentStatus_UnknownStatus(t *testing.T) {
	f := newAssignmentHandlerFixture(t)
	event := f.seedEvent(t, 3, 0, time.Now().Add(48*time.Hour))

	created := f.do(t, http.MethodPost, "/api/assignments", models.CreateAssignmentRequest{
		UserID:  primitive.NewObjectID().Hex(),
		EventID: event.ID.Hex(),
	})
	require.Equal(t, http.StatusCreated, created.Code)

	var resp struct {
		Assignment *models.AssignmentView `json:"assignment"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &resp))

	path := fmt.Sprintf("/api/assignments/%s/status", resp.Assignment.ID.Hex())
	rec := f.do(t, http.MethodPatch, path, models.UpdateStatusRequest{Status: "Ghosted"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Validation failed")
}

func TestGetAssignmentByID_RoundTrip(t *testing.T) {
	f := newAssignmentHandlerFixture(t)
	event := f.seedEvent(t, 3, 0, time.Now().Add(48*time.Hour))

	created := f.do(t, http.MethodPost, "/api/assignments", models.CreateAssignmentRequest{
		UserID:     primitive.NewObjectID().Hex(),
		EventID:    event.ID.Hex(),
		MatchScore: 7,
	})
	require.Equal(t, http.StatusCreated, created.Code)

	var resp struct {
		Assignment *models.AssignmentView `json:"assignment"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &resp))

	rec := f.do(t, http.MethodGet, "/api/assignments/"+resp.Assignment.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched models.AssignmentView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, resp.Assignment.Status, fetched.Status)
	assert.Equal(t, 7, fetched.MatchScore)
	assert.True(t, resp.Assignment.AssignedDate.Equal(fetched.AssignedDate))
}

func TestListAllAssignments_FilterValidation(t *testing.T) {
	f := newAssignmentHandlerFixture(t)

	rec := f.do(t, http.MethodGet, "/api/assignments/history?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/assignments/history", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
