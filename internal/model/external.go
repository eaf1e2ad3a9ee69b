package model

// DayWeather is one day of a weather timeline.
type DayWeather struct {
	DateTime    string   `json:"datetime"`
	TempMax     float64  `json:"tempmax"`
	TempMin     float64  `json:"tempmin"`
	Temp        float64  `json:"temp"`
	Humidity    float64  `json:"humidity"`
	WindSpeed   float64  `json:"windspeed"`
	Conditions  string   `json:"conditions"`
	PrecipType  []string `json:"preciptype"`
	Description string   `json:"description"`
}

// WeatherResponse is the upstream timeline payload.
type WeatherResponse struct {
	QueryCost       int          `json:"queryCost"`
	Latitude        float64      `json:"latitude"`
	Longitude       float64      `json:"longitude"`
	ResolvedAddress string       `json:"resolvedAddress"`
	Days            []DayWeather `json:"days"`
}

// PlantImage holds the catalog image urls of a species.
type PlantImage struct {
	License      int    `json:"license"`
	OriginalURL  string `json:"original_url"`
	RegularURL   string `json:"regular_url"`
	MediumURL    string `json:"medium_url"`
	SmallURL     string `json:"small_url"`
	ThumbnailURL string `json:"thumbnail"`
}

// PlantData is a species entry from the external plant catalog. Watering is
// the catalog's coarse classification ("Frequent", "Average", "Minimum", ...).
type PlantData struct {
	ID             int         `json:"id"`
	CommonName     string      `json:"common_name"`
	ScientificName []string    `json:"scientific_name"`
	OtherName      []string    `json:"other_name"`
	Cycle          string      `json:"cycle"`
	Watering       string      `json:"watering"`
	Sunlight       []string    `json:"sunlight"`
	DefaultImage   *PlantImage `json:"default_image,omitempty"`
}

// PlantPage is one page of catalog browse results.
type PlantPage struct {
	Data        []PlantData `json:"data"`
	To          int         `json:"to"`
	PerPage     int         `json:"per_page"`
	CurrentPage int         `json:"current_page"`
	From        int         `json:"from"`
	LastPage    int         `json:"last_page"`
	Total       int         `json:"total"`
}
