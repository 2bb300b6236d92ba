package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratama/folio/internal/domain"
	"github.com/pratama/folio/internal/modules/portfolio"
	"github.com/pratama/folio/internal/services"

	_ "modernc.org/sqlite"
)

// stubProvider returns a fixed USD quote for every requested ticker.
type stubProvider struct {
	price float64
}

func (s *stubProvider) GetQuotes(ctx context.Context, tickers []string) (map[string]domain.Quote, error) {
	quotes := make(map[string]domain.Quote, len(tickers))
	for _, ticker := range tickers {
		quotes[ticker] = domain.Quote{Ticker: ticker, CurrentPrice: s.price, Currency: "USD"}
	}
	return quotes, nil
}

func (s *stubProvider) GetHistory(ctx context.Context, ticker string, days int) ([]domain.HistoryPoint, error) {
	return nil, nil
}

func setupRouter(t *testing.T) (*chi.Mux, *portfolio.HoldingRepository) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE holdings (
			id TEXT PRIMARY KEY,
			ticker TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			quantity REAL NOT NULL,
			purchase_price REAL NOT NULL,
			purchase_date TEXT NOT NULL DEFAULT '',
			target_weight REAL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)
	`)
	require.NoError(t, err)

	repo := portfolio.NewHoldingRepository(db, zerolog.Nop())
	enricher := portfolio.NewEnricher(services.NewCurrencyNormalizer(zerolog.Nop()), zerolog.Nop())
	svc := portfolio.NewService(repo, &stubProvider{price: 100}, enricher, portfolio.NewAggregator(), zerolog.Nop())

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		NewHandler(repo, svc, zerolog.Nop()).RegisterRoutes(r)
	})
	return router, repo
}

func TestCreateAndListHoldings(t *testing.T) {
	router, _ := setupRouter(t)

	body := `{"ticker":"aapl","name":"Apple","quantity":10,"purchasePrice":150,"purchaseDate":"2025-01-15"}`
	req := httptest.NewRequest(http.MethodPost, "/api/holdings", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Holding
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "AAPL", created.Ticker)

	req = httptest.NewRequest(http.MethodGet, "/api/holdings", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var listed []domain.Holding
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}

func TestCreateHolding_Validation(t *testing.T) {
	router, _ := setupRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing ticker", `{"quantity":1,"purchasePrice":1}`},
		{"negative quantity", `{"ticker":"A","quantity":-1,"purchasePrice":1}`},
		{"negative price", `{"ticker":"A","quantity":1,"purchasePrice":-1}`},
		{"bad date", `{"ticker":"A","quantity":1,"purchasePrice":1,"purchaseDate":"15/01/2025"}`},
		{"bad weight", `{"ticker":"A","quantity":1,"purchasePrice":1,"targetWeight":150}`},
		{"not json", `{{{`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/holdings", bytes.NewBufferString(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestUpdateHolding(t *testing.T) {
	router, repo := setupRouter(t)

	created, err := repo.Create(domain.Holding{Ticker: "AAPL", Quantity: 10, PurchasePrice: 150})
	require.NoError(t, err)

	body := `{"ticker":"AAPL","quantity":20,"purchasePrice":150}`
	req := httptest.NewRequest(http.MethodPut, "/api/holdings/"+created.ID, bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	got, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, got.Quantity)
}

func TestUpdateHolding_NotFound(t *testing.T) {
	router, _ := setupRouter(t)

	body := `{"ticker":"AAPL","quantity":20,"purchasePrice":150}`
	req := httptest.NewRequest(http.MethodPut, "/api/holdings/missing", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteHolding(t *testing.T) {
	router, repo := setupRouter(t)

	created, err := repo.Create(domain.Holding{Ticker: "AAPL", Quantity: 10, PurchasePrice: 150})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/holdings/"+created.ID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/holdings/"+created.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPortfolio(t *testing.T) {
	router, repo := setupRouter(t)

	_, err := repo.Create(domain.Holding{Ticker: "AAPL", Quantity: 10, PurchasePrice: 150})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Holdings []domain.EnrichedHolding `json:"holdings"`
		Metrics  domain.PortfolioMetrics  `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Holdings, 1)
	assert.Equal(t, 1000.0, payload.Metrics.TotalValue) // 10 * 100
	assert.InDelta(t, 100.0, payload.Holdings[0].Allocation, 1e-9)
}
