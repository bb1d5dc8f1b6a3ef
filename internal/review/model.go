package review

import "time"

type Review struct {
	ID        int       `db:"id" json:"id"`
	BookingID int       `db:"booking_id" json:"booking_id"`
	ServiceID int       `db:"service_id" json:"service_id"`
	ClientID  int       `db:"client_id" json:"client_id"`
	Rating    int       `db:"rating" json:"rating"`
	Comment   string    `db:"comment" json:"comment"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
