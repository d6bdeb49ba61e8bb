package workouts

import (
	"context"
	"sort"
	"sync"
	"time"
)

var (
	_ workoutsRepo      = (*repoMock)(nil)
	_ workoutLogsLister = (*repoMock)(nil)
)

type repoMock struct {
	Logs   map[int]*WorkoutLog
	nextID int
	mutex  sync.Mutex
}

func newRepoMock() *repoMock {
	return &repoMock{
		Logs:   make(map[int]*WorkoutLog),
		nextID: 1,
	}
}

func (r *repoMock) AddLog(_ context.Context, workoutLog WorkoutLog) (*WorkoutLog, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	workoutLog.ID = r.nextID
	r.nextID++
	if workoutLog.CreatedAt.IsZero() {
		workoutLog.CreatedAt = time.Now()
	}
	for i := range workoutLog.Sets {
		workoutLog.Sets[i].WorkoutLogID = workoutLog.ID
	}

	r.Logs[workoutLog.ID] = &workoutLog
	return &workoutLog, nil
}

func (r *repoMock) ListForExerciseSince(
	_ context.Context,
	userID, exerciseID int,
	from time.Time,
) ([]WorkoutLog, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var workoutLogs []WorkoutLog
	for _, workoutLog := range r.Logs {
		if workoutLog.UserID != userID || workoutLog.ExerciseID != exerciseID {
			continue
		}
		if workoutLog.Date.Before(from) {
			continue
		}
		logCopy := *workoutLog
		logCopy.Sets = append([]Set(nil), workoutLog.Sets...)
		sort.Slice(logCopy.Sets, func(i, j int) bool {
			return logCopy.Sets[i].SetNumber < logCopy.Sets[j].SetNumber
		})
		workoutLogs = append(workoutLogs, logCopy)
	}

	sort.Slice(workoutLogs, func(i, j int) bool {
		return workoutLogs[i].Date.Before(workoutLogs[j].Date)
	})
	return workoutLogs, nil
}

func (r *repoMock) RecentLogs(_ context.Context, userID, limit int) ([]WorkoutLog, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var workoutLogs []WorkoutLog
	for _, workoutLog := range r.Logs {
		if workoutLog.UserID != userID {
			continue
		}
		workoutLogs = append(workoutLogs, *workoutLog)
	}

	sort.Slice(workoutLogs, func(i, j int) bool {
		return workoutLogs[i].CreatedAt.After(workoutLogs[j].CreatedAt)
	})
	if len(workoutLogs) > limit {
		workoutLogs = workoutLogs[:limit]
	}
	return workoutLogs, nil
}
