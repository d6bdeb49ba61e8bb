package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymtracker/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrExerciseNotFound  = errors.New("exercise not found")
	ErrDuplicateExercise = errors.New("exercise with that name already exists")
)

const (
	fiveMinutes        = 5 * 60
	catalogCacheExpire = fiveMinutes // catalog changes rarely, expire in seconds
)

type Repo struct {
	db    *pgxpool.Pool
	cache *freecache.Cache
}

func NewRepo(db *pgxpool.Pool) *Repo {
	megabyte := 1024 * 1024
	return &Repo{
		db:    db,
		cache: freecache.NewCache(10 * megabyte),
	}
}

func catalogCacheKey(userID int) []byte {
	return []byte(fmt.Sprintf("catalog::%d", userID))
}

// ListVisibleToUser returns all active exercises the user can log against:
// the shared system catalog plus their own custom exercises, ordered by
// muscle group and name.
func (r *Repo) ListVisibleToUser(ctx context.Context, userID int) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.listVisible")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	cacheKey := catalogCacheKey(userID)
	if cachedBytes, cacheErr := r.cache.Get(cacheKey); cacheErr == nil {
		var cached []Exercise
		if unmarshalErr := json.Unmarshal(cachedBytes, &cached); unmarshalErr == nil {
			log.Tracef("exercise catalog for user %d served from cache", userID)
			return cached, nil
		} else {
			log.Errorf("unmarshal cached exercise catalog for user %d: %s", userID, unmarshalErr)
		}
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
			    id, name, muscle_group, description, user_id, active, created_at
			FROM exercise
			WHERE active AND (user_id IS NULL OR user_id = $1)
			ORDER BY muscle_group, name
		`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("exercises [query]: %w", err)
	}
	defer rows.Close()

	var visibleExercises []Exercise
	for rows.Next() {
		var exercise Exercise
		err := rows.Scan(
			&exercise.ID,
			&exercise.Name,
			&exercise.MuscleGroup,
			&exercise.Description,
			&exercise.UserID,
			&exercise.Active,
			&exercise.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("exercises [rows scan]: %w", err)
		}
		visibleExercises = append(visibleExercises, exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("exercises [rows error]: %w", err)
	}

	if catalogBytes, err := json.Marshal(visibleExercises); err == nil {
		if err := r.cache.Set(cacheKey, catalogBytes, catalogCacheExpire); err != nil {
			log.Errorf("cache exercise catalog for user %d: %s", userID, err)
		}
	}

	return visibleExercises, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var exercise Exercise
	err = r.db.QueryRow(
		ctx,
		`
			SELECT
			    id, name, muscle_group, description, user_id, active, created_at
			FROM exercise
			WHERE id = $1
		`,
		id,
	).Scan(
		&exercise.ID,
		&exercise.Name,
		&exercise.MuscleGroup,
		&exercise.Description,
		&exercise.UserID,
		&exercise.Active,
		&exercise.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("exercise [query row]: %w", err)
	}

	return &exercise, nil
}

// Add stores a new custom exercise. The name must not collide, case
// insensitively, with a system exercise or another exercise of the same
// user, archived ones included.
func (r *Repo) Add(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if exercise.UserID == nil {
		return nil, errors.New("custom exercise without owner")
	}

	var existingID int
	err = r.db.QueryRow(
		ctx,
		`
			SELECT id FROM exercise
			WHERE lower(name) = lower($1) AND (user_id IS NULL OR user_id = $2)
			LIMIT 1
		`,
		exercise.Name, *exercise.UserID,
	).Scan(&existingID)
	if err == nil {
		return nil, ErrDuplicateExercise
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("exercise duplicate check: %w", err)
	}

	if exercise.CreatedAt.IsZero() {
		exercise.CreatedAt = time.Now()
	}
	exercise.Active = true

	err = r.db.QueryRow(
		ctx,
		`
			INSERT INTO exercise (name, muscle_group, description, user_id, active, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`,
		exercise.Name, exercise.MuscleGroup, exercise.Description,
		exercise.UserID, exercise.Active, exercise.CreatedAt,
	).Scan(&exercise.ID)
	if err != nil {
		return nil, fmt.Errorf("exercise [insert]: %w", err)
	}

	r.invalidateCatalogCache(*exercise.UserID)

	return &exercise, nil
}

// Archive deactivates an exercise instead of deleting it, preserving the
// workout history that references it.
func (r *Repo) Archive(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.archive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var ownerID *int
	err = r.db.QueryRow(
		ctx,
		`UPDATE exercise SET active = FALSE WHERE id = $1 RETURNING user_id`,
		id,
	).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrExerciseNotFound
	}
	if err != nil {
		return fmt.Errorf("exercise [archive]: %w", err)
	}

	if ownerID != nil {
		r.invalidateCatalogCache(*ownerID)
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var ownerID *int
	err = r.db.QueryRow(
		ctx,
		`DELETE FROM exercise WHERE id = $1 RETURNING user_id`,
		id,
	).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrExerciseNotFound
	}
	if err != nil {
		return fmt.Errorf("exercise [delete]: %w", err)
	}

	if ownerID != nil {
		r.invalidateCatalogCache(*ownerID)
	}

	return nil
}

// HasWorkoutLogs reports whether any workout session references this
// exercise, which decides between archiving and hard deletion.
func (r *Repo) HasWorkoutLogs(ctx context.Context, exerciseID int) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.hasWorkoutLogs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var hasLogs bool
	err = r.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM workout_log WHERE exercise_id = $1)`,
		exerciseID,
	).Scan(&hasLogs)
	if err != nil {
		return false, fmt.Errorf("exercise has logs [query row]: %w", err)
	}

	return hasLogs, nil
}

func (r *Repo) invalidateCatalogCache(userID int) {
	r.cache.Del(catalogCacheKey(userID))
}
