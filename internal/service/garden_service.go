package service

import (
	"context"
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	apperrors "growmate/internal/errors"
	"growmate/internal/logger"
	"growmate/internal/model"
	"growmate/internal/repository"
)

// maxPlantUpdateAttempts bounds the optimistic retry loop for plant mutations.
const maxPlantUpdateAttempts = 3

// AddPlantResult is the garden after a plant was added, with the generated task.
type AddPlantResult struct {
	Garden *model.Garden     `json:"garden"`
	Plant  model.Plant       `json:"plant"`
	Task   *model.GardenTask `json:"task,omitempty"`
}

// GardenService manages gardens and their embedded plants.
type GardenService interface {
	Create(ctx context.Context, garden *model.Garden) (*model.Garden, error)
	Get(ctx context.Context, id string) (*model.Garden, error)
	List(ctx context.Context) ([]model.Garden, error)
	ListByUser(ctx context.Context, userID string) ([]model.Garden, error)
	// Replace overwrites the document; concurrent writers are last-write-wins.
	Replace(ctx context.Context, id string, garden *model.Garden) (*model.Garden, error)
	Delete(ctx context.Context, id string) error
	CreateDefault(ctx context.Context, user *model.User) (*model.Garden, error)

	AddPlant(ctx context.Context, gardenID string, plant model.Plant) (*AddPlantResult, error)
	RemovePlant(ctx context.Context, gardenID, plantID string) (*model.Garden, error)
	WaterPlant(ctx context.Context, gardenID, plantID string) (*model.Garden, error)
	AddGrowthRecord(ctx context.Context, gardenID, plantID string, record model.GrowthRecord) (*model.Garden, error)
}

type gardenService struct {
	gardens   repository.GardenRepository
	templates TemplateService
	tasks     TaskService
	clock     clock.Clock
	logger    *logger.Logger
}

// NewGardenService creates a garden service.
func NewGardenService(
	gardens repository.GardenRepository,
	templates TemplateService,
	tasks TaskService,
	clk clock.Clock,
	log *logger.Logger,
) GardenService {
	if clk == nil {
		clk = clock.New()
	}
	return &gardenService{
		gardens:   gardens,
		templates: templates,
		tasks:     tasks,
		clock:     clk,
		logger:    log.WithComponent("gardens"),
	}
}

func (s *gardenService) Create(ctx context.Context, garden *model.Garden) (*model.Garden, error) {
	if garden.TemplateID != nil && *garden.TemplateID != "" {
		tmpl, err := s.templates.Get(*garden.TemplateID)
		if err != nil {
			return nil, apperrors.ErrUnknownTemplate
		}
		if garden.Description == nil {
			desc := tmpl.Description
			garden.Description = &desc
		}
	}

	garden.ID = ""
	garden.Version = 1
	garden.CreatedAt = s.clock.Now().UTC()
	s.preparePlants(garden)
	if err := s.gardens.Create(ctx, garden); err != nil {
		return nil, fmt.Errorf("create garden: %w", err)
	}
	return garden, nil
}

// CreateDefault creates the "<username>'s garden" every new user starts with.
// The garden shares the user's id.
func (s *gardenService) CreateDefault(ctx context.Context, user *model.User) (*model.Garden, error) {
	garden := &model.Garden{
		ID:        user.ID,
		UserID:    user.ID,
		Name:      fmt.Sprintf("%s's garden", user.Username),
		Plants:    datatypes.JSONSlice[model.Plant]{},
		Version:   1,
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.gardens.Create(ctx, garden); err != nil {
		return nil, fmt.Errorf("create default garden: %w", err)
	}
	return garden, nil
}

func (s *gardenService) Get(ctx context.Context, id string) (*model.Garden, error) {
	return s.gardens.FindByID(ctx, id)
}

func (s *gardenService) List(ctx context.Context) ([]model.Garden, error) {
	return s.gardens.List(ctx)
}

func (s *gardenService) ListByUser(ctx context.Context, userID string) ([]model.Garden, error) {
	return s.gardens.ListByUser(ctx, userID)
}

func (s *gardenService) Replace(ctx context.Context, id string, garden *model.Garden) (*model.Garden, error) {
	existing, err := s.gardens.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	garden.ID = id
	garden.CreatedAt = existing.CreatedAt
	garden.Version = existing.Version + 1
	if garden.UserID == "" {
		garden.UserID = existing.UserID
	}
	s.preparePlants(garden)
	if err := s.gardens.Replace(ctx, garden); err != nil {
		return nil, err
	}
	return garden, nil
}

func (s *gardenService) Delete(ctx context.Context, id string) error {
	return s.gardens.Delete(ctx, id)
}

func (s *gardenService) AddPlant(ctx context.Context, gardenID string, plant model.Plant) (*AddPlantResult, error) {
	now := s.clock.Now().UTC()
	plant.ID = uuid.NewString()
	if plant.LastWatered.IsZero() {
		plant.LastWatered = now
	}
	if plant.DatePlanted.IsZero() {
		plant.DatePlanted = now
	}
	if plant.GrowthRecords == nil {
		plant.GrowthRecords = []model.GrowthRecord{}
	}

	garden, err := s.mutatePlants(ctx, gardenID, func(g *model.Garden) error {
		g.Plants = append(g.Plants, plant)
		return nil
	})
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.GenerateForPlant(ctx, garden.UserID, plant)
	if err != nil {
		// The plant is already persisted; the task can be created manually.
		s.logger.WithError(err).Errorw("generate watering task", "garden_id", gardenID, "plant_id", plant.ID)
		return &AddPlantResult{Garden: garden, Plant: plant}, nil
	}
	return &AddPlantResult{Garden: garden, Plant: plant, Task: task}, nil
}

func (s *gardenService) RemovePlant(ctx context.Context, gardenID, plantID string) (*model.Garden, error) {
	return s.mutatePlants(ctx, gardenID, func(g *model.Garden) error {
		idx := g.PlantIndex(plantID)
		if idx < 0 {
			return apperrors.ErrPlantNotFound
		}
		g.Plants = append(g.Plants[:idx:idx], g.Plants[idx+1:]...)
		return nil
	})
}

func (s *gardenService) WaterPlant(ctx context.Context, gardenID, plantID string) (*model.Garden, error) {
	now := s.clock.Now().UTC()
	return s.mutatePlants(ctx, gardenID, func(g *model.Garden) error {
		idx := g.PlantIndex(plantID)
		if idx < 0 {
			return apperrors.ErrPlantNotFound
		}
		g.Plants[idx].LastWatered = now
		return nil
	})
}

func (s *gardenService) AddGrowthRecord(ctx context.Context, gardenID, plantID string, record model.GrowthRecord) (*model.Garden, error) {
	if record.RecordDate.IsZero() {
		record.RecordDate = s.clock.Now().UTC()
	}
	return s.mutatePlants(ctx, gardenID, func(g *model.Garden) error {
		idx := g.PlantIndex(plantID)
		if idx < 0 {
			return apperrors.ErrPlantNotFound
		}
		g.Plants[idx].GrowthRecords = append(g.Plants[idx].GrowthRecords, record)
		return nil
	})
}

// mutatePlants applies fn to a freshly read garden and writes the plants back
// guarded by the garden version, re-reading on conflict.
func (s *gardenService) mutatePlants(ctx context.Context, gardenID string, fn func(g *model.Garden) error) (*model.Garden, error) {
	for attempt := 0; attempt < maxPlantUpdateAttempts; attempt++ {
		garden, err := s.gardens.FindByID(ctx, gardenID)
		if err != nil {
			return nil, err
		}
		if err := fn(garden); err != nil {
			return nil, err
		}

		applied, err := s.gardens.UpdatePlants(ctx, garden.ID, garden.Version, garden.Plants)
		if err != nil {
			return nil, fmt.Errorf("update garden plants: %w", err)
		}
		if applied {
			garden.Version++
			return garden, nil
		}
		s.logger.Debugw("garden version conflict, retrying", "garden_id", gardenID, "attempt", attempt+1)
	}
	return nil, apperrors.ErrGardenConflict
}

func (s *gardenService) preparePlants(garden *model.Garden) {
	if garden.Plants == nil {
		garden.Plants = datatypes.JSONSlice[model.Plant]{}
	}
	for i := range garden.Plants {
		if garden.Plants[i].ID == "" {
			garden.Plants[i].ID = uuid.NewString()
		}
		if garden.Plants[i].GrowthRecords == nil {
			garden.Plants[i].GrowthRecords = []model.GrowthRecord{}
		}
	}
}
