package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/hospitalapp/client-go/internal/api"
	"github.com/hospitalapp/client-go/internal/logging"
	"github.com/hospitalapp/client-go/internal/models"
)

// HospitalQuery is one directory search. Coordinates are optional; zero
// values are not sent. Limit falls back to a sane default.
type HospitalQuery struct {
	Query     string
	Latitude  float64
	Longitude float64
	RadiusM   int
	Limit     int
}

// HospitalService searches the hospital directory.
type HospitalService struct {
	api api.Client
	log logging.Logger
}

func NewHospitalService(client api.Client, log logging.Logger) *HospitalService {
	if log == nil {
		log = logging.Nop{}
	}
	return &HospitalService{api: client, log: log}
}

// Search runs a directory query and returns the matching hospitals.
func (s *HospitalService) Search(ctx context.Context, q HospitalQuery) ([]models.Hospital, error) {
	values := url.Values{}
	values.Set("query", q.Query)
	if q.Latitude != 0 || q.Longitude != 0 {
		values.Set("latitude", strconv.FormatFloat(q.Latitude, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(q.Longitude, 'f', -1, 64))
	}
	if q.RadiusM > 0 {
		values.Set("radius", strconv.Itoa(q.RadiusM))
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	values.Set("limit", strconv.Itoa(limit))

	outcome := s.api.Get(ctx, api.PathHospitalSearch+"?"+values.Encode())

	success, ok := outcome.(api.Success)
	if !ok {
		return nil, outcomeError(outcome)
	}

	hospitals := make([]models.Hospital, 0)
	for _, item := range listItems(success.Data) {
		hospitals = append(hospitals, models.Hospital{
			ID:        item.OptInt("id", 0),
			Name:      item.OptString("name", ""),
			Address:   item.OptString("address", ""),
			Phone:     item.OptString("phone", ""),
			Latitude:  item.OptFloat("latitude", 0),
			Longitude: item.OptFloat("longitude", 0),
			Distance:  item.OptFloat("distance", 0),
			Open:      item.OptBool("open", false),
		})
	}
	return hospitals, nil
}
