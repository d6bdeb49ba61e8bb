package workouts

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/gymtracker/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// AddLog stores a workout log together with its sets in one transaction.
func (r *Repo) AddLog(ctx context.Context, workoutLog WorkoutLog) (_ *WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.addLog")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if workoutLog.CreatedAt.IsZero() {
		workoutLog.CreatedAt = time.Now()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `
		INSERT INTO workout_log (user_id, exercise_id, date, created_at, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		workoutLog.UserID,
		workoutLog.ExerciseID,
		workoutLog.Date,
		workoutLog.CreatedAt,
		workoutLog.Notes,
	).Scan(&workoutLog.ID)
	if err != nil {
		return nil, fmt.Errorf("workout log [insert]: %w", err)
	}

	for i := range workoutLog.Sets {
		set := &workoutLog.Sets[i]
		set.WorkoutLogID = workoutLog.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO workout_set (workout_log_id, set_number, kilos, reps, completed)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`,
			set.WorkoutLogID,
			set.SetNumber,
			set.Kilos,
			set.Reps,
			set.Completed,
		).Scan(&set.ID)
		if err != nil {
			return nil, fmt.Errorf("workout set [insert]: %w", err)
		}
	}

	return &workoutLog, nil
}

// ListForExerciseSince returns the user's workout logs for one exercise
// with date >= from, ordered ascending by date, each with its sets in
// set number order.
func (r *Repo) ListForExerciseSince(
	ctx context.Context,
	userID, exerciseID int,
	from time.Time,
) (_ []WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listForExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.Int("exercise.id", exerciseID),
	)

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, exercise_id, date, created_at, notes
		FROM workout_log
		WHERE user_id = $1 AND exercise_id = $2 AND date >= $3
		ORDER BY date ASC
	`, userID, exerciseID, from)
	if err != nil {
		return nil, fmt.Errorf("workout logs [query]: %w", err)
	}

	workoutLogs, err := scanWorkoutLogs(rows)
	if err != nil {
		return nil, err
	}

	for i := range workoutLogs {
		workoutLogs[i].Sets, err = r.setsOfLog(ctx, workoutLogs[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return workoutLogs, nil
}

// RecentLogs returns the user's latest workout logs by creation time.
func (r *Repo) RecentLogs(ctx context.Context, userID, limit int) (_ []WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.recentLogs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, exercise_id, date, created_at, notes
		FROM workout_log
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent workout logs [query]: %w", err)
	}

	workoutLogs, err := scanWorkoutLogs(rows)
	if err != nil {
		return nil, err
	}

	for i := range workoutLogs {
		workoutLogs[i].Sets, err = r.setsOfLog(ctx, workoutLogs[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return workoutLogs, nil
}

func (r *Repo) setsOfLog(ctx context.Context, workoutLogID int) (_ []Set, err error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, workout_log_id, set_number, kilos, reps, completed
		FROM workout_set
		WHERE workout_log_id = $1
		ORDER BY set_number ASC
	`, workoutLogID)
	if err != nil {
		return nil, fmt.Errorf("workout sets [query]: %w", err)
	}
	defer rows.Close()

	var sets []Set
	for rows.Next() {
		var set Set
		err := rows.Scan(
			&set.ID,
			&set.WorkoutLogID,
			&set.SetNumber,
			&set.Kilos,
			&set.Reps,
			&set.Completed,
		)
		if err != nil {
			return nil, fmt.Errorf("workout sets [rows scan]: %w", err)
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("workout sets [rows error]: %w", err)
	}

	return sets, nil
}

func scanWorkoutLogs(rows pgx.Rows) ([]WorkoutLog, error) {
	defer rows.Close()

	var workoutLogs []WorkoutLog
	for rows.Next() {
		var workoutLog WorkoutLog
		err := rows.Scan(
			&workoutLog.ID,
			&workoutLog.UserID,
			&workoutLog.ExerciseID,
			&workoutLog.Date,
			&workoutLog.CreatedAt,
			&workoutLog.Notes,
		)
		if err != nil {
			return nil, fmt.Errorf("workout logs [rows scan]: %w", err)
		}
		workoutLogs = append(workoutLogs, workoutLog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("workout logs [rows error]: %w", err)
	}

	return workoutLogs, nil
}
