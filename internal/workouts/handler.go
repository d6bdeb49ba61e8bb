package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/2beens/gymtracker/internal/exercises"
	"github.com/2beens/gymtracker/internal/middleware"
	"github.com/2beens/gymtracker/internal/telemetry/metrics"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	msgWorkoutLogged = "Ejercicio registrado exitosamente!"

	defaultProgressWindowDays = 90
)

type workoutsRepo interface {
	AddLog(ctx context.Context, workoutLog WorkoutLog) (*WorkoutLog, error)
}

type progressAnalyzer interface {
	ExerciseProgress(ctx context.Context, userID, exerciseID, days int) ([]ProgressPoint, ProgressStats, error)
}

type exerciseInfoProvider interface {
	Get(ctx context.Context, id int) (*exercises.Exercise, error)
}

type Handler struct {
	repo           workoutsRepo
	analyzer       progressAnalyzer
	exercisesInfo  exerciseInfoProvider
	metricsManager *metrics.Manager
}

func NewHandler(
	repo workoutsRepo,
	analyzer progressAnalyzer,
	exercisesInfo exerciseInfoProvider,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:           repo,
		analyzer:       analyzer,
		exercisesInfo:  exercisesInfo,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/registrar_ejercicio", handler.handleLogWorkout).Methods("POST", "OPTIONS").Name("log-workout")
	mainRouter.HandleFunc("/progreso_ejercicio/{id}", handler.handleProgress).Methods("GET", "OPTIONS").Name("exercise-progress")
}

func (handler *Handler) handleLogWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "workoutsHandler.logWorkout")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Errorf("log workout failed, parse form error: %s", err)
		http.Error(w, "parse form error", http.StatusInternalServerError)
		return
	}

	exerciseIDStr := r.Form.Get("ejercicio_id")
	if exerciseIDStr == "" {
		http.Error(w, "error, exercise ID empty", http.StatusBadRequest)
		return
	}
	exerciseID, err := strconv.Atoi(exerciseIDStr)
	if err != nil {
		http.Error(w, "error, invalid exercise ID", http.StatusBadRequest)
		return
	}

	// one form row per set, parse failures skip the row but never the workout
	sets, skipped := ParseSetsData(r.Form["series_data"])

	addedLog, err := handler.repo.AddLog(ctx, WorkoutLog{
		UserID:     userID,
		ExerciseID: exerciseID,
		Date:       pkg.ParseDateOrToday(r.Form.Get("fecha")),
		Notes:      r.Form.Get("notas"),
		Sets:       sets,
	})
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			http.Error(w, "error, unknown exercise", http.StatusBadRequest)
			return
		}
		log.Errorf("log workout for user %d: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterWorkoutsLogged.Inc()
	handler.metricsManager.CounterSetsLogged.Add(float64(len(addedLog.Sets)))
	handler.metricsManager.CounterSetsSkipped.Add(float64(skipped))

	log.Debugf(
		"user %d logged workout %d: exercise %d, %d sets (%d skipped)",
		userID, addedLog.ID, exerciseID, len(addedLog.Sets), skipped,
	)

	pkg.RedirectWithStatus(w, r, "/dashboard", msgWorkoutLogged)
}

type progressResponse struct {
	Exercise    string          `json:"ejercicio"`
	MuscleGroup string          `json:"grupo_muscular"`
	Points      []ProgressPoint `json:"datos"`
	Stats       ProgressStats   `json:"estadisticas"`
	Period      string          `json:"periodo"`
}

func (handler *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "workoutsHandler.progress")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "No autenticado", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	exerciseID, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, invalid exercise ID", http.StatusBadRequest)
		return
	}

	days := defaultProgressWindowDays
	if daysParam := r.URL.Query().Get("dias"); daysParam != "" {
		if parsedDays, err := strconv.Atoi(daysParam); err == nil {
			days = parsedDays
		}
	}

	// existence check only, deliberately not an ownership check: logs of
	// other users never match below, but name and muscle group are served
	exercise, err := handler.exercisesInfo.Get(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, exercises.ErrExerciseNotFound) {
			pkg.WriteJSONError(w, "Ejercicio no encontrado", http.StatusNotFound)
			return
		}
		log.Errorf("exercise progress, get exercise %d: %s", exerciseID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	points, stats, err := handler.analyzer.ExerciseProgress(ctx, userID, exerciseID, days)
	if err != nil {
		log.Errorf("exercise progress for user %d, exercise %d: %s", userID, exerciseID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	responseJson, err := json.Marshal(progressResponse{
		Exercise:    exercise.Name,
		MuscleGroup: exercise.MuscleGroup,
		Points:      points,
		Stats:       stats,
		Period:      fmt.Sprintf("Últimos %d días", days),
	})
	if err != nil {
		log.Errorf("exercise progress, marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, responseJson)
}
