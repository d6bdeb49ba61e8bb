package workouts

import (
	"testing"
	"time"

	"github.com/2beens/gymtracker/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func daysAgo(days int) time.Time {
	return pkg.DateToday().AddDate(0, 0, -days)
}

func TestAnalyzer_ExerciseProgress(t *testing.T) {
	repo := newRepoMock()
	analyzer := NewAnalyzer(repo)

	_, err := repo.AddLog(t.Context(), WorkoutLog{
		UserID: 1, ExerciseID: 7, Date: daysAgo(10), Notes: "felt strong",
		Sets: []Set{
			{SetNumber: 1, Kilos: 10, Reps: 5, Completed: true},
			{SetNumber: 2, Kilos: 12, Reps: 5, Completed: true},
		},
	})
	require.NoError(t, err)
	_, err = repo.AddLog(t.Context(), WorkoutLog{
		UserID: 1, ExerciseID: 7, Date: daysAgo(3),
		Sets: []Set{
			{SetNumber: 1, Kilos: 14, Reps: 4, Completed: true},
			{SetNumber: 3, Kilos: 16, Reps: 3, Completed: false},
		},
	})
	require.NoError(t, err)

	points, stats, err := analyzer.ExerciseProgress(t.Context(), 1, 7, 90)
	require.NoError(t, err)
	require.Len(t, points, 2)

	first := points[0]
	assert.Equal(t, daysAgo(10).Format(pkg.DateLayout), first.Date)
	assert.Equal(t, float64(10), first.FirstSetKilos)
	assert.Equal(t, 5, first.FirstSetReps)
	assert.Equal(t, float64(12), first.MaxKilos)
	assert.Equal(t, float64(11), first.AvgKilos)
	assert.Equal(t, 10, first.TotalReps)
	assert.Equal(t, 2, first.TotalSets)
	// 10*5 + 12*5
	assert.Equal(t, float64(110), first.TotalVolume)
	assert.Equal(t, "felt strong", first.Notes)
	require.Len(t, first.Sets, 2)
	assert.Equal(t, SetDetail{Number: 1, Kilos: 10, Reps: 5, Completed: true}, first.Sets[0])

	second := points[1]
	assert.Equal(t, float64(14), second.FirstSetKilos)
	assert.Equal(t, float64(16), second.MaxKilos)
	require.Len(t, second.Sets, 2)
	assert.Equal(t, 3, second.Sets[1].Number)

	assert.Equal(t, float64(14), stats.CurrentKilos)
	assert.Equal(t, float64(10), stats.InitialKilos)
	assert.Equal(t, float64(14), stats.MaxKilos)
	assert.Equal(t, float64(4), stats.Delta)
	assert.Equal(t, 2, stats.TotalSessions)
	assert.Equal(t, (110.0+(14*4+16*3))/2, stats.AvgVolume)
}

func TestAnalyzer_ExerciseProgress_NegativeWeights(t *testing.T) {
	repo := newRepoMock()
	analyzer := NewAnalyzer(repo)

	// assisted machines log the counterweight, all sets below zero
	_, err := repo.AddLog(t.Context(), WorkoutLog{
		UserID: 1, ExerciseID: 7, Date: daysAgo(2),
		Sets: []Set{
			{SetNumber: 1, Kilos: -30, Reps: 8, Completed: true},
			{SetNumber: 2, Kilos: -25, Reps: 6, Completed: true},
		},
	})
	require.NoError(t, err)

	points, stats, err := analyzer.ExerciseProgress(t.Context(), 1, 7, 90)
	require.NoError(t, err)
	require.Len(t, points, 1)

	// the true maximum of the sets, not a zero floor
	assert.Equal(t, float64(-25), points[0].MaxKilos)
	assert.Equal(t, float64(-30), stats.MaxKilos)
	assert.Equal(t, float64(-30), stats.CurrentKilos)
}

func TestAnalyzer_ExerciseProgress_SkipsLogsWithoutSets(t *testing.T) {
	repo := newRepoMock()
	analyzer := NewAnalyzer(repo)

	_, err := repo.AddLog(t.Context(), WorkoutLog{
		UserID: 1, ExerciseID: 7, Date: daysAgo(5),
	})
	require.NoError(t, err)
	_, err = repo.AddLog(t.Context(), WorkoutLog{
		UserID: 1, ExerciseID: 7, Date: daysAgo(2),
		Sets: []Set{{SetNumber: 1, Kilos: 20, Reps: 10, Completed: true}},
	})
	require.NoError(t, err)

	points, stats, err := analyzer.ExerciseProgress(t.Context(), 1, 7, 90)
	require.NoError(t, err)

	// the set-less session contributes nothing
	require.Len(t, points, 1)
	assert.Equal(t, 1, stats.TotalSessions)
	// a single point is no trend
	assert.Zero(t, stats.Delta)
	assert.Equal(t, float64(20), stats.CurrentKilos)
	assert.Equal(t, float64(20), stats.InitialKilos)
}

func TestAnalyzer_ExerciseProgress_WindowAndOwnership(t *testing.T) {
	repo := newRepoMock()
	analyzer := NewAnalyzer(repo)

	// outside the window
	_, err := repo.AddLog(t.Context(), WorkoutLog{
		UserID: 1, ExerciseID: 7, Date: daysAgo(40),
		Sets: []Set{{SetNumber: 1, Kilos: 30, Reps: 5, Completed: true}},
	})
	require.NoError(t, err)
	// another user
	_, err = repo.AddLog(t.Context(), WorkoutLog{
		UserID: 2, ExerciseID: 7, Date: daysAgo(1),
		Sets: []Set{{SetNumber: 1, Kilos: 50, Reps: 5, Completed: true}},
	})
	require.NoError(t, err)

	points, stats, err := analyzer.ExerciseProgress(t.Context(), 1, 7, 30)
	require.NoError(t, err)

	assert.Empty(t, points)
	assert.Zero(t, stats.TotalSessions)
	assert.Zero(t, stats.CurrentKilos)
	assert.Zero(t, stats.AvgVolume)
}
