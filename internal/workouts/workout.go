package workouts

import "time"

// WorkoutLog is one workout session: a user doing one exercise on one
// date, as a list of sets. Date is the day the exercise was performed,
// CreatedAt is when the row was written.
type WorkoutLog struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	ExerciseID int       `json:"exercise_id"`
	Date       time.Time `json:"date"`
	CreatedAt  time.Time `json:"created_at"`
	Notes      string    `json:"notes"`
	Sets       []Set     `json:"sets"`
}

// Set is one performed unit of weight times repetitions within a workout
// log. SetNumber is the 1-based position of the payload in the submitted
// list, not a count of stored sets, so skipped payloads leave gaps.
type Set struct {
	ID           int     `json:"id"`
	WorkoutLogID int     `json:"workout_log_id"`
	SetNumber    int     `json:"set_number"`
	Kilos        float64 `json:"kilos"`
	Reps         int     `json:"reps"`
	Completed    bool    `json:"completed"`
}
