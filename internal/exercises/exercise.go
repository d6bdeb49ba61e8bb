package exercises

import "time"

// Exercise is a catalog entry users pick when logging a workout. System
// exercises have a nil UserID and are visible to everyone; custom ones
// belong to the user who created them. Archived exercises stay in the
// table with Active set to false so old workout logs keep resolving.
type Exercise struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	MuscleGroup string    `json:"muscle_group"`
	Description string    `json:"description"`
	UserID      *int      `json:"user_id,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsSystem reports whether the exercise belongs to the shared catalog.
func (e *Exercise) IsSystem() bool {
	return e.UserID == nil
}
