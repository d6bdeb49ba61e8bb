package weights

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/gymtracker/internal/telemetry/tracing"

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

// Upsert writes a weight log, overwriting weight, notes and the record
// timestamp of an existing row for the same user and date. Returns the
// stored row and whether an existing one was updated.
func (r *Repo) Upsert(ctx context.Context, weightLog WeightLog) (_ *WeightLog, updated bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", weightLog.UserID))

	if weightLog.CreatedAt.IsZero() {
		weightLog.CreatedAt = time.Now()
	}

	// xmax is non-zero on the conflict path, telling an update from an insert
	err = r.db.QueryRow(ctx, `
		INSERT INTO weight_log (user_id, kilos, date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, date) DO UPDATE
			SET kilos = EXCLUDED.kilos,
			    notes = EXCLUDED.notes,
			    created_at = EXCLUDED.created_at
		RETURNING id, (xmax <> 0)
	`,
		weightLog.UserID,
		weightLog.Kilos,
		weightLog.Date,
		weightLog.Notes,
		weightLog.CreatedAt,
	).Scan(&weightLog.ID, &updated)
	if err != nil {
		return nil, false, fmt.Errorf("weight log [upsert]: %w", err)
	}

	return &weightLog, updated, nil
}

// ListSince returns the user's weight logs with date >= from, oldest first.
func (r *Repo) ListSince(ctx context.Context, userID int, from time.Time) (_ []WeightLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.listSince")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, kilos, date, notes, created_at
		FROM weight_log
		WHERE user_id = $1 AND date >= $2
		ORDER BY date ASC
	`, userID, from)
	if err != nil {
		return nil, fmt.Errorf("weight logs [query]: %w", err)
	}
	defer rows.Close()

	var weightLogs []WeightLog
	for rows.Next() {
		var weightLog WeightLog
		err := rows.Scan(
			&weightLog.ID,
			&weightLog.UserID,
			&weightLog.Kilos,
			&weightLog.Date,
			&weightLog.Notes,
			&weightLog.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("weight logs [rows scan]: %w", err)
		}
		weightLogs = append(weightLogs, weightLog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("weight logs [rows error]: %w", err)
	}

	return weightLogs, nil
}
