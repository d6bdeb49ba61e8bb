package exercises

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/2beens/gymtracker/internal/middleware"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	msgDuplicateExercise = "Ya existe un ejercicio con ese nombre"
	msgDeleteNotAllowed  = "No tienes permiso para eliminar este ejercicio"
)

type exercisesRepo interface {
	ListVisibleToUser(ctx context.Context, userID int) ([]Exercise, error)
	Get(ctx context.Context, id int) (*Exercise, error)
	Add(ctx context.Context, exercise Exercise) (*Exercise, error)
	Archive(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
	HasWorkoutLogs(ctx context.Context, exerciseID int) (bool, error)
}

type Handler struct {
	repo exercisesRepo
}

func NewHandler(repo exercisesRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/agregar_ejercicio", handler.handleAdd).Methods("POST", "OPTIONS").Name("add-exercise")
	mainRouter.HandleFunc("/eliminar_ejercicio/{id}", handler.handleDelete).Methods("POST", "OPTIONS").Name("delete-exercise")
}

func (handler *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "exercisesHandler.add")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Errorf("add exercise failed, parse form error: %s", err)
		http.Error(w, "parse form error", http.StatusInternalServerError)
		return
	}

	name := strings.TrimSpace(r.Form.Get("nombre_ejercicio"))
	muscleGroup := strings.TrimSpace(r.Form.Get("grupo_muscular_ejercicio"))
	description := strings.TrimSpace(r.Form.Get("descripcion_ejercicio"))

	if name == "" || muscleGroup == "" {
		http.Error(w, "error, exercise name or muscle group empty", http.StatusBadRequest)
		return
	}

	addedExercise, err := handler.repo.Add(ctx, Exercise{
		Name:        name,
		MuscleGroup: muscleGroup,
		Description: description,
		UserID:      &userID,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateExercise) {
			pkg.RedirectWithStatus(w, r, "/dashboard", msgDuplicateExercise)
			return
		}
		log.Errorf("add exercise for user %d: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	log.Debugf("user %d added exercise %q [%d]", userID, addedExercise.Name, addedExercise.ID)

	pkg.RedirectWithStatus(w, r, "/dashboard", fmt.Sprintf("Ejercicio %q creado exitosamente!", addedExercise.Name))
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "exercisesHandler.delete")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, exercise ID empty", http.StatusBadRequest)
		return
	}
	exerciseID, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, invalid exercise ID", http.StatusBadRequest)
		return
	}

	exercise, err := handler.repo.Get(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Errorf("delete exercise, get %d: %s", exerciseID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	// system exercises and other users' exercises are off limits
	if exercise.IsSystem() || *exercise.UserID != userID {
		pkg.RedirectWithStatus(w, r, "/dashboard", msgDeleteNotAllowed)
		return
	}

	hasLogs, err := handler.repo.HasWorkoutLogs(ctx, exerciseID)
	if err != nil {
		log.Errorf("delete exercise, check logs for %d: %s", exerciseID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if hasLogs {
		// keep the row so old workout logs still resolve
		if err := handler.repo.Archive(ctx, exerciseID); err != nil {
			log.Errorf("archive exercise %d: %s", exerciseID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		pkg.RedirectWithStatus(w, r, "/dashboard",
			fmt.Sprintf("Ejercicio %q archivado (tiene historial de entrenamientos)", exercise.Name))
		return
	}

	if err := handler.repo.Delete(ctx, exerciseID); err != nil {
		log.Errorf("delete exercise %d: %s", exerciseID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.RedirectWithStatus(w, r, "/dashboard", fmt.Sprintf("Ejercicio %q eliminado", exercise.Name))
}
