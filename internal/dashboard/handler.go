package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"

	"github.com/2beens/gymtracker/internal/exercises"
	"github.com/2beens/gymtracker/internal/middleware"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/internal/workouts"
	"github.com/2beens/gymtracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const recentLogsLimit = 10

type exercisesLister interface {
	ListVisibleToUser(ctx context.Context, userID int) ([]exercises.Exercise, error)
}

type workoutLogsProvider interface {
	RecentLogs(ctx context.Context, userID, limit int) ([]workouts.WorkoutLog, error)
}

type Handler struct {
	exercisesRepo exercisesLister
	workoutsRepo  workoutLogsProvider
}

func NewHandler(exercisesRepo exercisesLister, workoutsRepo workoutLogsProvider) *Handler {
	return &Handler{
		exercisesRepo: exercisesRepo,
		workoutsRepo:  workoutsRepo,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/dashboard", handler.handleDashboard).Methods("GET", "OPTIONS").Name("dashboard")
}

type dashboardResponse struct {
	Exercises        []exercises.Exercise            `json:"ejercicios"`
	ExercisesByGroup map[string][]exercises.Exercise `json:"ejercicios_agrupados"`
	SortedGroups     []string                        `json:"grupos_ordenados"`
	CustomExercises  []exercises.Exercise            `json:"ejercicios_personalizados"`
	RecentLogs       []workouts.WorkoutLog           `json:"ultimos_registros"`
	Today            string                          `json:"today"`
}

func (handler *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "dashboardHandler.dashboard")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	visibleExercises, err := handler.exercisesRepo.ListVisibleToUser(ctx, userID)
	if err != nil {
		log.Errorf("dashboard, list exercises for user %d: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	recentLogs, err := handler.workoutsRepo.RecentLogs(ctx, userID, recentLogsLimit)
	if err != nil {
		log.Errorf("dashboard, recent logs for user %d: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if recentLogs == nil {
		recentLogs = []workouts.WorkoutLog{}
	}
	if visibleExercises == nil {
		visibleExercises = []exercises.Exercise{}
	}

	exercisesByGroup := make(map[string][]exercises.Exercise)
	customExercises := []exercises.Exercise{}
	for _, exercise := range visibleExercises {
		exercisesByGroup[exercise.MuscleGroup] = append(exercisesByGroup[exercise.MuscleGroup], exercise)
		if !exercise.IsSystem() {
			customExercises = append(customExercises, exercise)
		}
	}

	sortedGroups := make([]string, 0, len(exercisesByGroup))
	for group := range exercisesByGroup {
		sortedGroups = append(sortedGroups, group)
	}
	sort.Strings(sortedGroups)

	responseJson, err := json.Marshal(dashboardResponse{
		Exercises:        visibleExercises,
		ExercisesByGroup: exercisesByGroup,
		SortedGroups:     sortedGroups,
		CustomExercises:  customExercises,
		RecentLogs:       recentLogs,
		Today:            pkg.DateToday().Format(pkg.DateLayout),
	})
	if err != nil {
		log.Errorf("dashboard, marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, responseJson)
}
