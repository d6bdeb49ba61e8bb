package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/2beens/gymtracker/internal/exercises"
	"github.com/2beens/gymtracker/internal/middleware"
	"github.com/2beens/gymtracker/internal/workouts"
	"github.com/2beens/gymtracker/pkg"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exercisesListerMock struct {
	exercises []exercises.Exercise
}

func (m *exercisesListerMock) ListVisibleToUser(_ context.Context, _ int) ([]exercises.Exercise, error) {
	return m.exercises, nil
}

type workoutLogsProviderMock struct {
	logs []workouts.WorkoutLog
}

func (m *workoutLogsProviderMock) RecentLogs(_ context.Context, _ int, limit int) ([]workouts.WorkoutLog, error) {
	if len(m.logs) > limit {
		return m.logs[:limit], nil
	}
	return m.logs, nil
}

func TestHandler_Dashboard(t *testing.T) {
	ownerID := 1
	exercisesMock := &exercisesListerMock{
		exercises: []exercises.Exercise{
			{ID: 1, Name: "Curl con Barra", MuscleGroup: "Bíceps", Active: true},
			{ID: 2, Name: "Sentadilla", MuscleGroup: "Piernas", Active: true},
			{ID: 3, Name: "Zancadas Búlgaras", MuscleGroup: "Piernas", UserID: &ownerID, Active: true},
		},
	}
	workoutsMock := &workoutLogsProviderMock{
		logs: []workouts.WorkoutLog{
			{ID: 5, UserID: ownerID, ExerciseID: 2, Date: time.Now(), CreatedAt: time.Now()},
		},
	}

	handler := NewHandler(exercisesMock, workoutsMock)
	router := mux.NewRouter()
	handler.SetupRoutes(router)

	req, err := http.NewRequest("GET", "/dashboard", nil)
	require.NoError(t, err)
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), ownerID))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Exercises        []exercises.Exercise            `json:"ejercicios"`
		ExercisesByGroup map[string][]exercises.Exercise `json:"ejercicios_agrupados"`
		SortedGroups     []string                        `json:"grupos_ordenados"`
		CustomExercises  []exercises.Exercise            `json:"ejercicios_personalizados"`
		RecentLogs       []workouts.WorkoutLog           `json:"ultimos_registros"`
		Today            string                          `json:"today"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	assert.Len(t, response.Exercises, 3)
	assert.Equal(t, []string{"Bíceps", "Piernas"}, response.SortedGroups)
	assert.Len(t, response.ExercisesByGroup["Piernas"], 2)
	require.Len(t, response.CustomExercises, 1)
	assert.Equal(t, "Zancadas Búlgaras", response.CustomExercises[0].Name)
	require.Len(t, response.RecentLogs, 1)
	assert.Equal(t, 5, response.RecentLogs[0].ID)
	assert.Equal(t, pkg.DateToday().Format(pkg.DateLayout), response.Today)
}

func TestHandler_Dashboard_Unauthenticated(t *testing.T) {
	handler := NewHandler(&exercisesListerMock{}, &workoutLogsProviderMock{})
	router := mux.NewRouter()
	handler.SetupRoutes(router)

	req, err := http.NewRequest("GET", "/dashboard", nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	location, err := rec.Result().Location()
	require.NoError(t, err)
	assert.Equal(t, "/login", location.Path)
}
