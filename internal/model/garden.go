package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SoilParameters describes the soil of a garden. Values are free-form.
type SoilParameters struct {
	Type          string `json:"type" gorm:"size:100"`
	PHLevel       string `json:"pHLevel" gorm:"column:ph_level;size:20"`
	MoistureLevel string `json:"moistureLevel" gorm:"size:50"`
}

// GrowthRecord is a dated note or photo tracking a plant's progress.
type GrowthRecord struct {
	RecordDate time.Time `json:"recordDate"`
	Notes      string    `json:"notes,omitempty"`
	PhotoURL   string    `json:"photoUrl,omitempty"`
}

// Plant is embedded in its garden's document.
type Plant struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	APIPlantID    string         `json:"apiPlantId"`
	LastWatered   time.Time      `json:"lastWatered"`
	DatePlanted   time.Time      `json:"datePlanted"`
	GrowthRecords []GrowthRecord `json:"growthRecords"`
}

// Garden is a user-owned collection of plants. Plants are stored as a JSON
// document column and rewritten as a whole on every plant mutation.
type Garden struct {
	ID          string                    `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      string                    `json:"userId" gorm:"type:char(36);not null;index"`
	Name        string                    `json:"name" gorm:"size:255;not null"`
	Location    string                    `json:"location" gorm:"size:255"`
	Soil        SoilParameters            `json:"soil" gorm:"embedded;embeddedPrefix:soil_"`
	Description *string                   `json:"description,omitempty" gorm:"type:text"`
	TemplateID  *string                   `json:"templateId,omitempty" gorm:"size:36"`
	Plants      datatypes.JSONSlice[Plant] `json:"plants" gorm:"type:json"`
	Version     int                       `json:"version" gorm:"not null;default:1"`
	CreatedAt   time.Time                 `json:"createdAt"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (g *Garden) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.Plants == nil {
		g.Plants = datatypes.JSONSlice[Plant]{}
	}
	if g.Version == 0 {
		g.Version = 1
	}
	return nil
}

// PlantIndex returns the position of the plant with the given id, or -1.
func (g *Garden) PlantIndex(plantID string) int {
	for i := range g.Plants {
		if g.Plants[i].ID == plantID {
			return i
		}
	}
	return -1
}
