package exercises

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

var _ exercisesRepo = (*repoMock)(nil)

type repoMock struct {
	Exercises      map[int]*Exercise
	LogsByExercise map[int]int
	nextID         int
	mutex          sync.Mutex
}

func newRepoMock() *repoMock {
	return &repoMock{
		Exercises:      make(map[int]*Exercise),
		LogsByExercise: make(map[int]int),
		nextID:         1,
	}
}

func (r *repoMock) addExercise(exercise Exercise) *Exercise {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	exercise.ID = r.nextID
	r.nextID++
	if exercise.CreatedAt.IsZero() {
		exercise.CreatedAt = time.Now()
	}
	r.Exercises[exercise.ID] = &exercise
	return &exercise
}

func (r *repoMock) ListVisibleToUser(_ context.Context, userID int) ([]Exercise, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var visible []Exercise
	for _, e := range r.Exercises {
		if !e.Active {
			continue
		}
		if e.UserID == nil || *e.UserID == userID {
			visible = append(visible, *e)
		}
	}
	sort.Slice(visible, func(i, j int) bool {
		if visible[i].MuscleGroup != visible[j].MuscleGroup {
			return visible[i].MuscleGroup < visible[j].MuscleGroup
		}
		return visible[i].Name < visible[j].Name
	})
	return visible, nil
}

func (r *repoMock) Get(_ context.Context, id int) (*Exercise, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	exercise, ok := r.Exercises[id]
	if !ok {
		return nil, ErrExerciseNotFound
	}
	return exercise, nil
}

func (r *repoMock) Add(_ context.Context, exercise Exercise) (*Exercise, error) {
	r.mutex.Lock()
	for _, e := range r.Exercises {
		sameOwner := e.UserID == nil || (exercise.UserID != nil && *e.UserID == *exercise.UserID)
		if sameOwner && strings.EqualFold(e.Name, exercise.Name) {
			r.mutex.Unlock()
			return nil, ErrDuplicateExercise
		}
	}
	r.mutex.Unlock()

	exercise.Active = true
	return r.addExercise(exercise), nil
}

func (r *repoMock) Archive(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	exercise, ok := r.Exercises[id]
	if !ok {
		return ErrExerciseNotFound
	}
	exercise.Active = false
	return nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.Exercises[id]; !ok {
		return ErrExerciseNotFound
	}
	delete(r.Exercises, id)
	return nil
}

func (r *repoMock) HasWorkoutLogs(_ context.Context, exerciseID int) (bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.LogsByExercise[exerciseID] > 0, nil
}
