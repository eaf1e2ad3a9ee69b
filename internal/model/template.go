package model

import "time"

// PlantTemplate is one plant slot in a garden template.
type PlantTemplate struct {
	PlantID          string `json:"plantId"`
	Name             string `json:"name"`
	CareInstructions string `json:"careInstructions"`
}

// GardenTemplate is a predefined garden layout users can start from.
type GardenTemplate struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Plants      []PlantTemplate `json:"plants"`
	Layout      []string        `json:"layout"`
	CreatedAt   time.Time       `json:"createdAt"`
}
