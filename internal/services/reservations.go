package services

import (
	"context"
	"net/url"

	"github.com/hospitalapp/client-go/internal/api"
	"github.com/hospitalapp/client-go/internal/logging"
	"github.com/hospitalapp/client-go/internal/models"
)

// ReservationService books hospital appointments and lists the user's
// reservation history.
type ReservationService struct {
	api api.Client
	log logging.Logger
}

func NewReservationService(client api.Client, log logging.Logger) *ReservationService {
	if log == nil {
		log = logging.Nop{}
	}
	return &ReservationService{api: client, log: log}
}

// Make books an appointment. Email is optional and omitted when empty.
func (s *ReservationService) Make(ctx context.Context, r models.Reservation) error {
	payload := api.Document{
		"name":     r.Name,
		"phone":    r.Phone,
		"hospital": r.Hospital,
		"address":  r.Address,
		"message":  r.Message,
	}
	if r.Email != "" {
		payload["email"] = r.Email
	}
	outcome := s.api.Post(ctx, api.PathReservations, payload)
	return requireSuccess(outcome, "reservation rejected")
}

// ForUser lists the reservations of one user.
func (s *ReservationService) ForUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	q := url.Values{}
	q.Set("userId", userID)
	outcome := s.api.Get(ctx, api.PathUserReservations+"?"+q.Encode())

	success, ok := outcome.(api.Success)
	if !ok {
		return nil, outcomeError(outcome)
	}

	reservations := make([]models.Reservation, 0)
	for _, item := range listItems(success.Data) {
		reservations = append(reservations, models.Reservation{
			ID:        item.OptInt("id", 0),
			Name:      item.OptString("name", ""),
			Phone:     item.OptString("phone", ""),
			Hospital:  item.OptString("hospital", ""),
			Address:   item.OptString("address", ""),
			Message:   item.OptString("message", ""),
			Email:     item.OptString("email", ""),
			CreatedAt: item.OptString("created_at", ""),
			Status:    item.OptString("status", ""),
		})
	}
	return reservations, nil
}
