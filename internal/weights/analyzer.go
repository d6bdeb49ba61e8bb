package weights

import (
	"context"
	"time"

	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"

	"go.opentelemetry.io/otel/attribute"
)

// WeightPoint is one weight measurement in chart-ready form.
type WeightPoint struct {
	Date  string  `json:"fecha"`
	Kilos float64 `json:"peso"`
	Notes string  `json:"notas"`
}

// WeightSeries is the lookback window of a user's weight, oldest first.
// Current and Initial are nil when the window holds no rows; Delta stays 0
// for fewer than two rows, a single measurement is no trend.
type WeightSeries struct {
	Points  []WeightPoint
	Current *float64
	Initial *float64
	Delta   float64
}

type weightLogsLister interface {
	ListSince(ctx context.Context, userID int, from time.Time) ([]WeightLog, error)
}

type Analyzer struct {
	repo weightLogsLister
}

func NewAnalyzer(repo weightLogsLister) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

// WeightProgress builds the weight series over the last `days` days.
func (a *Analyzer) WeightProgress(ctx context.Context, userID, days int) (_ *WeightSeries, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.weights.weightProgress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.Int("days", days),
	)

	from := pkg.DateToday().AddDate(0, 0, -days)
	weightLogs, err := a.repo.ListSince(ctx, userID, from)
	if err != nil {
		return nil, err
	}

	series := &WeightSeries{
		Points: make([]WeightPoint, 0, len(weightLogs)),
	}
	for _, weightLog := range weightLogs {
		series.Points = append(series.Points, WeightPoint{
			Date:  weightLog.Date.Format(pkg.DateLayout),
			Kilos: weightLog.Kilos,
			Notes: weightLog.Notes,
		})
	}

	if len(series.Points) > 0 {
		series.Initial = &series.Points[0].Kilos
		series.Current = &series.Points[len(series.Points)-1].Kilos
	}
	if len(series.Points) > 1 {
		series.Delta = *series.Current - *series.Initial
	}

	return series, nil
}
