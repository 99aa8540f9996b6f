package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hospitalapp/client-go/internal/common"
	"github.com/hospitalapp/client-go/internal/models"
	"github.com/hospitalapp/client-go/internal/services"
)

// Hospitals runs a directory search.
func (a *App) Hospitals(ctx context.Context) error {
	query, err := getSimpleText(a.reader, "Search for", a.out)
	if err != nil {
		return err
	}

	q := services.HospitalQuery{Query: query}

	latRaw, err := getSimpleText(a.reader, "Latitude (empty to skip)", a.out)
	if err != nil {
		return err
	}
	if latRaw != "" {
		lngRaw, err := getSimpleText(a.reader, "Longitude", a.out)
		if err != nil {
			return err
		}
		if q.Latitude, err = strconv.ParseFloat(latRaw, 64); err != nil {
			fmt.Fprintln(a.out, "Not a number:", latRaw)
			return err
		}
		if q.Longitude, err = strconv.ParseFloat(lngRaw, 64); err != nil {
			fmt.Fprintln(a.out, "Not a number:", lngRaw)
			return err
		}
	}

	hospitals, err := a.hospitals.Search(ctx, q)
	if err != nil {
		fmt.Fprintln(a.out, "Search failed:", err)
		return err
	}
	if len(hospitals) == 0 {
		fmt.Fprintln(a.out, "Nothing found.")
		return nil
	}
	for _, h := range hospitals {
		open := "closed"
		if h.Open {
			open = "open"
		}
		fmt.Fprintf(a.out, "#%d  %s  %s  %s (%s)\n", h.ID, h.Name, h.Address, h.Phone, open)
	}
	return nil
}

// Reserve books an appointment.
func (a *App) Reserve(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Patient name", a.out)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Phone", a.out)
	if err != nil {
		return err
	}
	hospital, err := getSimpleText(a.reader, "Hospital", a.out)
	if err != nil {
		return err
	}
	address, err := getSimpleText(a.reader, "Address", a.out)
	if err != nil {
		return err
	}
	message, err := getSimpleText(a.reader, "Message for the hospital", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email (optional)", a.out)
	if err != nil {
		return err
	}

	r := models.Reservation{
		Name:     name,
		Phone:    phone,
		Hospital: hospital,
		Address:  address,
		Message:  message,
		Email:    email,
	}
	if err := a.reservations.Make(ctx, r); err != nil {
		fmt.Fprintln(a.out, "Reservation failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Reservation requested.")
	return nil
}

// Reservations lists the current user's reservations.
func (a *App) Reservations(ctx context.Context) error {
	u := a.store.Current()
	if u == nil {
		fmt.Fprintln(a.out, "Log in first.")
		return common.ErrNotLoggedIn
	}

	list, err := a.reservations.ForUser(ctx, u.ID)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load reservations:", err)
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No reservations.")
		return nil
	}
	for _, r := range list {
		fmt.Fprintf(a.out, "#%d  %s at %s (%s)  %s\n", r.ID, r.Name, r.Hospital, r.CreatedAt, r.Status)
	}
	return nil
}
