package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/volunteerhub/volunteerhub-backend/internal/apperrors"
	"github.com/volunteerhub/volunteerhub-backend/internal/models"
	mongorepo "github.com/volunteerhub/volunteerhub-backend/internal/repositories/mongodb"
	"github.com/volunteerhub/volunteerhub-backend/pkg/mongodb"
	"golang.org/x/crypto/bcrypt"
)

const (
	demoVolunteerEmail = "volunteer@example.com"
	demoAdminEmail     = "admin@example.com"
	demoPassword       = "password123"
)

// SeedDemoData provisions a demo admin, a demo volunteer with a populated
// profile, one upcoming and one past event, and the assignments and history
// that tie them together. Running it twice changes nothing.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "volunteerhub"
	}

	client, err := mongodb.NewClient(mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(dbName)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo := mongorepo.NewUserRepository(db)
	profileRepo := mongorepo.NewProfileRepository(db)
	eventRepo := mongorepo.NewEventRepository(db)
	assignmentRepo := mongorepo.NewAssignmentRepository(db)
	historyRepo := mongorepo.NewHistoryRepository(db)

	for _, ensure := range []func(context.Context) error{
		userRepo.EnsureIndexes,
		profileRepo.EnsureIndexes,
		assignmentRepo.EnsureIndexes,
		historyRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatalf("Failed to ensure indexes: %v", err)
		}
	}

	now := time.Now()
	upcomingDate := now.Add(7 * 24 * time.Hour)
	pastDate := now.Add(-14 * 24 * time.Hour)

	admin, err := ensureUser(ctx, userRepo, "Demo Admin", demoAdminEmail, models.RoleAdmin)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	if err := ensureProfile(ctx, profileRepo, admin, []string{"Coordination"}, nil); err != nil {
		log.Fatalf("Failed to seed admin profile: %v", err)
	}

	volunteer, err := ensureUser(ctx, userRepo, "Demo Volunteer", demoVolunteerEmail, models.RoleVolunteer)
	if err != nil {
		log.Fatalf("Failed to seed volunteer: %v", err)
	}
	availability := []string{
		upcomingDate.UTC().Format("2006-01-02"),
		pastDate.UTC().Format("2006-01-02"),
	}
	if err := ensureProfile(ctx, profileRepo, volunteer, []string{"Teamwork", "First Aid", "Logistics"}, availability); err != nil {
		log.Fatalf("Failed to seed volunteer profile: %v", err)
	}

	upcoming, err := ensureEvent(ctx, eventRepo, &models.Event{
		EventName:        "Food Drive - Warehouse",
		Description:      "Sort and pack donations for local families.",
		Location:         "123 Community Way, Houston, TX",
		RequiredSkills:   []string{"Logistics", "Teamwork"},
		Urgency:          models.UrgencyHigh,
		EventDate:        upcomingDate,
		NeededVolunteers: 3,
	})
	if err != nil {
		log.Fatalf("Failed to seed upcoming event: %v", err)
	}

	past, err := ensureEvent(ctx, eventRepo, &models.Event{
		EventName:        "Park Cleanup",
		Description:      "Collect trash and plastics around the north lake.",
		Location:         "Memorial Park, Houston, TX",
		RequiredSkills:   []string{"Environmental Awareness", "Physical Work"},
		Urgency:          models.UrgencyMedium,
		EventDate:        pastDate,
		NeededVolunteers: 5,
	})
	if err != nil {
		log.Fatalf("Failed to seed past event: %v", err)
	}

	if err := ensureAssignment(ctx, assignmentRepo, eventRepo, &models.Assignment{
		UserID:       volunteer.ID,
		EventID:      upcoming.ID,
		MatchScore:   4,
		Status:       models.StatusAssigned,
		AssignedDate: now,
	}, true); err != nil {
		log.Fatalf("Failed to seed upcoming assignment: %v", err)
	}

	completedDate := now.Add(-20 * 24 * time.Hour)
	if err := ensureAssignment(ctx, assignmentRepo, eventRepo, &models.Assignment{
		UserID:       volunteer.ID,
		EventID:      past.ID,
		MatchScore:   5,
		Status:       models.StatusCompleted,
		AssignedDate: completedDate,
	}, false); err != nil {
		log.Fatalf("Failed to seed completed assignment: %v", err)
	}

	if err := historyRepo.Upsert(ctx, &models.HistoryRecord{
		UserID:            volunteer.ID,
		EventID:           past.ID,
		ParticipationDate: completedDate,
	}); err != nil {
		log.Fatalf("Failed to seed history: %v", err)
	}

	log.Println("Demo data ready.")
	log.Printf("Volunteer email: %s / %s", demoVolunteerEmail, demoPassword)
	log.Printf("Admin email: %s / %s", demoAdminEmail, demoPassword)
}

func ensureUser(ctx context.Context, repo *mongorepo.UserRepository, name, email, role string) (*models.User, error) {
	user, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user = &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func ensureProfile(ctx context.Context, repo *mongorepo.ProfileRepository, user *models.User, skills, availability []string) error {
	if _, err := repo.FindByUserID(ctx, user.ID); err == nil {
		return nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	profile := models.NewUserProfile(user.ID, user.Name)
	profile.Address = "123 Main St"
	profile.City = "Houston"
	profile.State = "TX"
	profile.Zipcode = "77002"
	profile.Skills = skills
	if availability != nil {
		profile.Availability = availability
	}
	return repo.Create(ctx, profile)
}

func ensureEvent(ctx context.Context, repo *mongorepo.EventRepository, event *models.Event) (*models.Event, error) {
	existing, err := repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range existing {
		if e.EventName == event.EventName {
			return e, nil
		}
	}
	if err := repo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func ensureAssignment(ctx context.Context, repo *mongorepo.AssignmentRepository, events *mongorepo.EventRepository, assignment *models.Assignment, holdsSlot bool) error {
	if err := repo.Create(ctx, assignment); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateAssignment) {
			return nil
		}
		return err
	}
	if holdsSlot {
		return events.IncrementAssigned(ctx, assignment.EventID)
	}
	return nil
}
