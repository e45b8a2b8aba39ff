package insights_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fintwin-app/fintwin/internal/http/auth"
	"github.com/fintwin-app/fintwin/internal/http/insights"
	"github.com/fintwin-app/fintwin/internal/insight"
	"github.com/fintwin-app/fintwin/internal/transaction"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)

	txs := insight.NewMockTransactionSource(ctrl)
	budgets := insight.NewMockBudgetSource(ctrl)
	subs := insight.NewMockSubscriptionSource(ctrl)
	goals := insight.NewMockGoalSource(ctrl)

	txs.EXPECT().List(gomock.Any(), "user-1", gomock.Any()).
		Return([]*transaction.Transaction{
			{Amount: 300000, Type: transaction.TypeIncome, Date: time.Now().AddDate(0, 0, -10)},
			{Amount: 50000, Type: transaction.TypeExpense, Category: "Food", Date: time.Now().AddDate(0, 0, -5)},
		}, nil).AnyTimes()
	budgets.EXPECT().List(gomock.Any(), "user-1").Return(nil, nil).AnyTimes()
	subs.EXPECT().List(gomock.Any(), "user-1", false).Return(nil, nil).AnyTimes()
	goals.EXPECT().List(gomock.Any(), "user-1").Return(nil, nil).AnyTimes()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := insight.NewService(txs, budgets, subs, goals, time.Minute, logger)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithUserID(req.Context(), "user-1")))
		})
	})
	r.Route("/insights", insights.NewHandler(svc).Routes)

	return r
}

func TestSnapshot(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/insights", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "velocity")
	assert.Contains(t, rec.Body.String(), "forecasts")
}

func TestUniverses(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/insights/universes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "perfect_budget")
}

func TestWhatIf(t *testing.T) {
	router := newRouter(t)

	body := `{"scenario":"change_income","income_change":200}`
	req := httptest.NewRequest(http.MethodPost, "/insights/whatif", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "highly_recommended")
}

func TestWhatIfUnknownScenario(t *testing.T) {
	router := newRouter(t)

	body := `{"scenario":"time_travel"}`
	req := httptest.NewRequest(http.MethodPost, "/insights/whatif", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
