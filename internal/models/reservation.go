package models

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Active reports whether a reservation in this status occupies slot capacity.
func (s ReservationStatus) Active() bool {
	return s == ReservationPending || s == ReservationConfirmed
}

type Reservation struct {
	ID           string            `json:"id"`
	CustomerName string            `json:"customer_name"`
	Phone        string            `json:"phone"`
	Date         string            `json:"date"`
	TimeSlot     string            `json:"time_slot"`
	PartySize    int               `json:"party_size"`
	Status       ReservationStatus `json:"status"`
	Channel      string            `json:"channel"`
	Notes        string            `json:"notes,omitempty"`
	CreatedAt    string            `json:"created_at"`
}
