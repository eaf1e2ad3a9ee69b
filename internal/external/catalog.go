package external

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"growmate/internal/model"
)

const catalogService = "plant catalog"

// CatalogClient queries the external plant species catalog.
type CatalogClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewCatalogClient creates a client for baseURL. A nil httpClient uses a default with timeout.
func NewCatalogClient(baseURL, apiKey string, httpClient *http.Client) *CatalogClient {
	return &CatalogClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: orDefault(httpClient),
	}
}

// Species returns the catalog entry with the given id.
func (c *CatalogClient) Species(ctx context.Context, id string) (model.PlantData, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	endpoint := c.baseURL + "/species/details/" + url.PathEscape(id) + "?" + q.Encode()

	var plant model.PlantData
	if err := getJSON(ctx, c.httpClient, catalogService, endpoint, &plant); err != nil {
		return model.PlantData{}, err
	}
	return plant, nil
}

// Search returns one page of species matching query. An empty query lists all.
func (c *CatalogClient) Search(ctx context.Context, query string, page int) (model.PlantPage, error) {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("page", strconv.Itoa(page))
	if query != "" {
		q.Set("q", query)
	}
	endpoint := c.baseURL + "/species-list?" + q.Encode()

	var result model.PlantPage
	if err := getJSON(ctx, c.httpClient, catalogService, endpoint, &result); err != nil {
		return model.PlantPage{}, err
	}
	if result.Data == nil {
		result.Data = []model.PlantData{}
	}
	return result, nil
}
