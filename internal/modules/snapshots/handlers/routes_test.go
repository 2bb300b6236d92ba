package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratama/folio/internal/domain"
)

type stubNavStore struct {
	snapshots []domain.NavSnapshot
}

func (s *stubNavStore) GetHistory() ([]domain.NavSnapshot, error) {
	return s.snapshots, nil
}

func (s *stubNavStore) SaveSnapshot(date string, value float64) error {
	s.snapshots = append(s.snapshots, domain.NavSnapshot{Date: date, Value: value})
	return nil
}

func setupRouter(t *testing.T, store *stubNavStore) *chi.Mux {
	t.Helper()
	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		NewHandler(store, zerolog.Nop()).RegisterRoutes(r)
	})
	return router
}

func TestGetHistory(t *testing.T) {
	store := &stubNavStore{snapshots: []domain.NavSnapshot{
		{Date: "2026-08-28", Value: 10000},
		{Date: "2026-08-29", Value: 10250},
	}}
	router := setupRouter(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/nav", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var history []domain.NavSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Equal(t, store.snapshots, history)
}

func TestGetHistory_EmptyIsArray(t *testing.T) {
	router := setupRouter(t, &stubNavStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/nav", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestSaveSnapshot(t *testing.T) {
	store := &stubNavStore{}
	router := setupRouter(t, store)

	body := `{"date":"2026-08-30","value":10500}`
	req := httptest.NewRequest(http.MethodPost, "/api/nav", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.snapshots, 1)
	assert.Equal(t, "2026-08-30", store.snapshots[0].Date)
	assert.Equal(t, 10500.0, store.snapshots[0].Value)
}

func TestSaveSnapshot_Validation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bad date", `{"date":"30/08/2026","value":100}`},
		{"missing date", `{"value":100}`},
		{"zero value", `{"date":"2026-08-30","value":0}`},
		{"negative value", `{"date":"2026-08-30","value":-1}`},
		{"not json", `{{{`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &stubNavStore{}
			router := setupRouter(t, store)

			req := httptest.NewRequest(http.MethodPost, "/api/nav", bytes.NewBufferString(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, store.snapshots)
		})
	}
}
