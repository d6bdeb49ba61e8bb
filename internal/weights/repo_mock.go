package weights

import (
	"context"
	"sort"
	"sync"
	"time"
)

var (
	_ weightsRepo      = (*repoMock)(nil)
	_ weightLogsLister = (*repoMock)(nil)
)

type repoMock struct {
	Logs   map[int]*WeightLog
	nextID int
	mutex  sync.Mutex
}

func newRepoMock() *repoMock {
	return &repoMock{
		Logs:   make(map[int]*WeightLog),
		nextID: 1,
	}
}

func (r *repoMock) Upsert(_ context.Context, weightLog WeightLog) (*WeightLog, bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if weightLog.CreatedAt.IsZero() {
		weightLog.CreatedAt = time.Now()
	}

	for _, existing := range r.Logs {
		if existing.UserID == weightLog.UserID && existing.Date.Equal(weightLog.Date) {
			existing.Kilos = weightLog.Kilos
			existing.Notes = weightLog.Notes
			existing.CreatedAt = weightLog.CreatedAt
			return existing, true, nil
		}
	}

	weightLog.ID = r.nextID
	r.nextID++
	r.Logs[weightLog.ID] = &weightLog
	return &weightLog, false, nil
}

func (r *repoMock) ListSince(_ context.Context, userID int, from time.Time) ([]WeightLog, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var weightLogs []WeightLog
	for _, weightLog := range r.Logs {
		if weightLog.UserID != userID || weightLog.Date.Before(from) {
			continue
		}
		weightLogs = append(weightLogs, *weightLog)
	}

	sort.Slice(weightLogs, func(i, j int) bool {
		return weightLogs[i].Date.Before(weightLogs[j].Date)
	})
	return weightLogs, nil
}
