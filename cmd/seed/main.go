package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"growmate/internal/config"
	"growmate/internal/db"
	apperrors "growmate/internal/errors"
	"growmate/internal/logger"
	"growmate/internal/model"
	"growmate/internal/repository"
	"growmate/internal/service"
)

var (
	adminEmail    string
	adminPassword string
	demoPassword  string
	resetDB       bool
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the GrowMate database with an admin, demo data and plant knowledge",
	Long: `Creates the admin account, a demo user with a planted garden and two
pending watering tasks, and the starter plant knowledge base.

Running it again only fills in what is missing.`,
	RunE: runSeed,
}

func init() {
	rootCmd.Flags().StringVar(&adminEmail, "admin-email", "admin@example.com", "Admin account email")
	rootCmd.Flags().StringVar(&adminPassword, "admin-password", "AdminPassword123!", "Admin account password")
	rootCmd.Flags().StringVar(&demoPassword, "demo-password", "User1Password!", "Password for the demo user")
	rootCmd.Flags().BoolVar(&resetDB, "reset", false, "Drop all tables before seeding")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	gormDB, err := db.NewMySQL(cfg.MySQL)
	if err != nil {
		return err
	}
	if resetDB {
		log.Warn("dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			return err
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	s := newSeeder(gormDB, log)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return s.run(ctx)
}

type seeder struct {
	users   repository.UserRepository
	gardens repository.GardenRepository
	tasks   repository.TaskRepository
	entries repository.KnowledgeBaseRepository
	userSvc service.UserService
	log     *logger.Logger
}

func newSeeder(gormDB *gorm.DB, log *logger.Logger) *seeder {
	users := repository.NewUserRepository(gormDB)
	gardens := repository.NewGardenRepository(gormDB)
	tasks := repository.NewTaskRepository(gormDB)

	// Only default-garden provisioning runs through the service here, so no
	// task service is wired.
	gardenSvc := service.NewGardenService(gardens, service.NewTemplateService(), nil, nil, log)
	return &seeder{
		users:   users,
		gardens: gardens,
		tasks:   tasks,
		entries: repository.NewKnowledgeBaseRepository(gormDB),
		userSvc: service.NewUserService(users, gardenSvc, nil),
		log:     log.WithComponent("seed"),
	}
}

func (s *seeder) run(ctx context.Context) error {
	if _, _, err := s.ensureUser(ctx, "admin", adminEmail, adminPassword, model.RoleAdmin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	demo, created, err := s.ensureUser(ctx, "user1", "user1@example.com", demoPassword, model.RoleUser)
	if err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}

	for _, entry := range starterKnowledgeBase() {
		if err := s.ensureEntry(ctx, entry); err != nil {
			return fmt.Errorf("seed knowledge base %q: %w", entry.Name, err)
		}
	}

	if created {
		if err := s.plantDemoGarden(ctx, demo); err != nil {
			return fmt.Errorf("seed demo garden: %w", err)
		}
	}

	s.log.Info("seed completed")
	return nil
}

// ensureUser creates the account unless the email is taken. The bool reports
// whether it was created.
func (s *seeder) ensureUser(ctx context.Context, username, email, password string, role model.Role) (*model.User, bool, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		s.log.Infow("user exists, skipping", "email", email)
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, false, err
	}

	user, err := s.userSvc.CreateUser(ctx, service.NewUser{
		Username: username,
		Email:    email,
		Password: password,
		Role:     role,
	})
	if err != nil {
		return nil, false, err
	}
	s.log.Infow("user created", "email", email, "role", role)
	return user, true, nil
}

func (s *seeder) ensureEntry(ctx context.Context, entry model.PlantKnowledgeBase) error {
	_, err := s.entries.FindByName(ctx, entry.Name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrKnowledgeBaseNotFound) {
		return err
	}
	if err := s.entries.Create(ctx, &entry); err != nil {
		return err
	}
	s.log.Infow("knowledge base entry created", "name", entry.Name)
	return nil
}

// plantDemoGarden fills the demo user's default garden and schedules a
// watering task per plant.
func (s *seeder) plantDemoGarden(ctx context.Context, user *model.User) error {
	garden, err := s.gardens.FindByID(ctx, user.ID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	buttercup := model.Plant{
		ID:          uuid.NewString(),
		Name:        "Buttercup",
		LastWatered: now.Add(-24 * time.Hour),
		DatePlanted: time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC),
	}
	rose := model.Plant{
		ID:          uuid.NewString(),
		Name:        "Rose",
		LastWatered: now.Add(-48 * time.Hour),
		DatePlanted: time.Date(2023, time.April, 15, 0, 0, 0, 0, time.UTC),
	}

	garden.Name = "User1's Garden"
	garden.Location = "New York City"
	garden.Soil = model.SoilParameters{Type: "Loamy", PHLevel: "6.5", MoistureLevel: "Medium"}
	garden.Plants = datatypes.JSONSlice[model.Plant]{buttercup, rose}
	garden.Version++
	if err := s.gardens.Replace(ctx, garden); err != nil {
		return err
	}

	tasks := []model.GardenTask{
		{UserID: user.ID, TaskName: "Water Buttercups", PlantID: buttercup.ID, ScheduledTime: now.Add(8 * time.Hour), TaskType: model.TaskTypeWatering},
		{UserID: user.ID, TaskName: "Water Rose", PlantID: rose.ID, ScheduledTime: now.Add(48 * time.Hour), TaskType: model.TaskTypeWatering},
	}
	for i := range tasks {
		if err := s.tasks.Create(ctx, &tasks[i]); err != nil {
			return err
		}
	}
	s.log.Infow("demo garden planted", "garden_id", garden.ID, "plants", len(garden.Plants))
	return nil
}

func starterKnowledgeBase() []model.PlantKnowledgeBase {
	return []model.PlantKnowledgeBase{
		{
			Name:                  "Buttercup",
			Species:               "Ranunculus",
			Description:           "Bright yellow flowers.",
			SoilRequirements:      "Well-drained soil.",
			LightRequirements:     "Full sun.",
			WateringInterval:      model.Interval(8 * time.Hour),
			WateringIntensity:     "Medium",
			TypicalPlantingSeason: model.SeasonSpring,
			SuggestedTasks: datatypes.JSONSlice[model.TaskTemplate]{
				{TaskName: "Water Buttercups", TaskType: model.TaskTypeWatering, RecurrenceInterval: model.NewInterval(8 * time.Hour)},
			},
		},
		{
			Name:                  "Rose",
			Species:               "Rosa",
			Description:           "Various colors and fragrances.",
			SoilRequirements:      "Loamy soil.",
			LightRequirements:     "Full sun to partial shade.",
			WateringInterval:      model.Interval(48 * time.Hour),
			WateringIntensity:     "High",
			TypicalPlantingSeason: model.SeasonSummer,
			SuggestedTasks: datatypes.JSONSlice[model.TaskTemplate]{
				{TaskName: "Water Rose", TaskType: model.TaskTypeWatering, RecurrenceInterval: model.NewInterval(48 * time.Hour)},
				{TaskName: "Prune Rose", TaskType: "Pruning", RecurrenceInterval: model.NewInterval(30 * 24 * time.Hour)},
			},
		},
	}
}
