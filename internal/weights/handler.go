package weights

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/2beens/gymtracker/internal/middleware"
	"github.com/2beens/gymtracker/internal/telemetry/metrics"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	msgWeightLogged  = "Peso registrado exitosamente!"
	msgWeightUpdated = "Peso actualizado correctamente!"

	defaultWeightWindowDays = 30
)

type weightsRepo interface {
	Upsert(ctx context.Context, weightLog WeightLog) (*WeightLog, bool, error)
}

type weightsAnalyzer interface {
	WeightProgress(ctx context.Context, userID, days int) (*WeightSeries, error)
}

type Handler struct {
	repo           weightsRepo
	analyzer       weightsAnalyzer
	metricsManager *metrics.Manager
}

func NewHandler(
	repo weightsRepo,
	analyzer weightsAnalyzer,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:           repo,
		analyzer:       analyzer,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/registrar_peso", handler.handleLogWeight).Methods("POST", "OPTIONS").Name("log-weight")
	mainRouter.HandleFunc("/peso_data", handler.handleWeightData).Methods("GET", "OPTIONS").Name("weight-data")
}

func (handler *Handler) handleLogWeight(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "weightsHandler.logWeight")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Errorf("log weight failed, parse form error: %s", err)
		http.Error(w, "parse form error", http.StatusInternalServerError)
		return
	}

	kilos, err := strconv.ParseFloat(strings.TrimSpace(r.Form.Get("peso")), 64)
	if err != nil {
		http.Error(w, "error, invalid weight", http.StatusBadRequest)
		return
	}

	storedLog, updated, err := handler.repo.Upsert(ctx, WeightLog{
		UserID: userID,
		Kilos:  kilos,
		Date:   pkg.ParseDateOrToday(r.Form.Get("fecha_peso")),
		Notes:  r.Form.Get("notas_peso"),
	})
	if err != nil {
		log.Errorf("log weight for user %d: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterWeightsLogged.Inc()
	log.Debugf("user %d logged weight %.1fkg for %s [updated=%t]",
		userID, storedLog.Kilos, storedLog.Date.Format(pkg.DateLayout), updated)

	if updated {
		pkg.RedirectWithStatus(w, r, "/dashboard", msgWeightUpdated)
		return
	}
	pkg.RedirectWithStatus(w, r, "/dashboard", msgWeightLogged)
}

type weightDataResponse struct {
	Points  []WeightPoint `json:"datos"`
	Period  string        `json:"periodo"`
	Current *float64      `json:"peso_actual"`
	Initial *float64      `json:"peso_inicial"`
	Delta   float64       `json:"diferencia"`
}

func (handler *Handler) handleWeightData(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "weightsHandler.weightData")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "No autenticado", http.StatusUnauthorized)
		return
	}

	days := defaultWeightWindowDays
	if daysParam := r.URL.Query().Get("dias"); daysParam != "" {
		if parsedDays, err := strconv.Atoi(daysParam); err == nil {
			days = parsedDays
		}
	}

	series, err := handler.analyzer.WeightProgress(ctx, userID, days)
	if err != nil {
		log.Errorf("weight data for user %d: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	responseJson, err := json.Marshal(weightDataResponse{
		Points:  series.Points,
		Period:  fmt.Sprintf("Últimos %d días", days),
		Current: series.Current,
		Initial: series.Initial,
		Delta:   series.Delta,
	})
	if err != nil {
		log.Errorf("weight data, marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, responseJson)
}
