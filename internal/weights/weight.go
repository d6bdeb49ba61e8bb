package weights

import "time"

// WeightLog is one bodyweight measurement. A user has at most one row per
// date: logging the same date again overwrites weight and notes.
type WeightLog struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Kilos     float64   `json:"kilos"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}
