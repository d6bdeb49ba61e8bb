package workouts

import (
	"context"
	"time"

	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"

	"go.opentelemetry.io/otel/attribute"
)

// ProgressPoint is one workout session digested into chart-ready numbers.
// The first set's weight is the main progress indicator, the rest of the
// fields describe the whole session.
type ProgressPoint struct {
	Date          string      `json:"fecha"`
	FirstSetKilos float64     `json:"peso_primera_serie"`
	FirstSetReps  int         `json:"reps_primera_serie"`
	MaxKilos      float64     `json:"peso_max"`
	AvgKilos      float64     `json:"peso_promedio"`
	TotalReps     int         `json:"repeticiones_total"`
	TotalSets     int         `json:"series_total"`
	TotalVolume   float64     `json:"volumen_total"`
	Notes         string      `json:"notas"`
	Sets          []SetDetail `json:"series_detalle"`
}

type SetDetail struct {
	Number    int     `json:"numero"`
	Kilos     float64 `json:"peso"`
	Reps      int     `json:"repeticiones"`
	Completed bool    `json:"completada"`
}

// ProgressStats summarizes a progress series, tracking the first-set
// weight across sessions.
type ProgressStats struct {
	CurrentKilos  float64 `json:"peso_actual"`
	InitialKilos  float64 `json:"peso_inicial"`
	MaxKilos      float64 `json:"peso_maximo"`
	Delta         float64 `json:"diferencia"`
	TotalSessions int     `json:"total_sesiones"`
	AvgVolume     float64 `json:"volumen_promedio"`
}

type workoutLogsLister interface {
	ListForExerciseSince(ctx context.Context, userID, exerciseID int, from time.Time) ([]WorkoutLog, error)
}

type Analyzer struct {
	repo workoutLogsLister
}

func NewAnalyzer(repo workoutLogsLister) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

// ExerciseProgress builds the progress series for one exercise over the
// last `days` days, oldest session first. Sessions without a single
// stored set carry no signal for the charts and are left out.
func (a *Analyzer) ExerciseProgress(
	ctx context.Context,
	userID, exerciseID, days int,
) (_ []ProgressPoint, _ ProgressStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workouts.exerciseProgress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.Int("exercise.id", exerciseID),
		attribute.Int("days", days),
	)

	from := pkg.DateToday().AddDate(0, 0, -days)
	workoutLogs, err := a.repo.ListForExerciseSince(ctx, userID, exerciseID, from)
	if err != nil {
		return nil, ProgressStats{}, err
	}

	points := make([]ProgressPoint, 0, len(workoutLogs))
	for _, workoutLog := range workoutLogs {
		if len(workoutLog.Sets) == 0 {
			continue
		}
		points = append(points, progressPoint(workoutLog))
	}

	return points, progressStats(points), nil
}

func progressPoint(workoutLog WorkoutLog) ProgressPoint {
	// sets come ordered by set number, the first one leads the chart
	firstSet := workoutLog.Sets[0]

	point := ProgressPoint{
		Date:          workoutLog.Date.Format(pkg.DateLayout),
		FirstSetKilos: firstSet.Kilos,
		FirstSetReps:  firstSet.Reps,
		// start the max from a real set, not from zero, so all-negative
		// weights (assisted machines) keep their true maximum
		MaxKilos:  firstSet.Kilos,
		TotalSets: len(workoutLog.Sets),
		Notes:     workoutLog.Notes,
		Sets:      make([]SetDetail, 0, len(workoutLog.Sets)),
	}

	var kilosSum float64
	for _, set := range workoutLog.Sets {
		if set.Kilos > point.MaxKilos {
			point.MaxKilos = set.Kilos
		}
		kilosSum += set.Kilos
		point.TotalReps += set.Reps
		point.TotalVolume += set.Kilos * float64(set.Reps)
		point.Sets = append(point.Sets, SetDetail{
			Number:    set.SetNumber,
			Kilos:     set.Kilos,
			Reps:      set.Reps,
			Completed: set.Completed,
		})
	}
	point.AvgKilos = kilosSum / float64(len(workoutLog.Sets))

	return point
}

func progressStats(points []ProgressPoint) ProgressStats {
	stats := ProgressStats{
		TotalSessions: len(points),
	}
	if len(points) == 0 {
		return stats
	}

	stats.InitialKilos = points[0].FirstSetKilos
	stats.CurrentKilos = points[len(points)-1].FirstSetKilos
	stats.MaxKilos = points[0].FirstSetKilos

	var volumeSum float64
	for _, point := range points {
		if point.FirstSetKilos > stats.MaxKilos {
			stats.MaxKilos = point.FirstSetKilos
		}
		volumeSum += point.TotalVolume
	}
	stats.AvgVolume = volumeSum / float64(len(points))

	// a single session is no trend yet
	if len(points) > 1 {
		stats.Delta = stats.CurrentKilos - stats.InitialKilos
	}

	return stats
}
