package models

// Hospital is one search hit from the hospital directory.
type Hospital struct {
	ID        int
	Name      string
	Address   string
	Phone     string
	Latitude  float64
	Longitude float64
	Distance  float64
	Open      bool
}
