package catalog

import "time"

const (
	PriceTypeHourly = "hourly"
	PriceTypeFixed  = "fixed"
)

// Service is a provider's listing. Writes happen through the listings CRUD
// surface; this core only reads it and maintains the denormalized rating
// fields.
type Service struct {
	ID            int       `db:"id" json:"id"`
	ProviderID    int       `db:"provider_id" json:"provider_id"`
	Title         string    `db:"title" json:"title"`
	Description   string    `db:"description" json:"description"`
	PriceType     string    `db:"price_type" json:"price_type"`
	PriceCents    int64     `db:"price_cents" json:"price_cents"`
	DurationHours int       `db:"duration_hours" json:"duration_hours"`
	AverageRating float64   `db:"average_rating" json:"average_rating"`
	TotalReviews  int       `db:"total_reviews" json:"total_reviews"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
