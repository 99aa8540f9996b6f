package models

// Reservation is a hospital appointment request and its server-side record.
type Reservation struct {
	ID        int
	Name      string
	Phone     string
	Hospital  string
	Address   string
	Message   string
	Email     string
	CreatedAt string
	Status    string
}
