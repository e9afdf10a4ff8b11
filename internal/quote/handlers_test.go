package quote_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/McCollisters/autovista-api-sub002/internal/portal"
	"github.com/McCollisters/autovista-api-sub002/internal/quote"
)

func newTestRouter(t *testing.T, p *portal.Portal) (*chi.Mux, *memStore) {
	t.Helper()
	store := &memStore{}
	svc := quote.NewService(store, &stubConfig{cfg: testResolved()}, nil, zerolog.Nop())
	h := quote.NewHandler(svc)

	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		if p != nil {
			r.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
					next.ServeHTTP(w, req.WithContext(portal.WithPortal(req.Context(), p)))
				})
			})
		}
		h.Routes(r)
	})
	return r, store
}

func createBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"origin":      map[string]any{"city": "Moorestown", "state": "NJ", "zip": "08057"},
		"destination": map[string]any{"city": "Austin", "state": "TX", "zip": "78701"},
		"miles":       1200,
		"vehicles": []map[string]any{
			{"make": "Toyota", "model": "Camry", "year": 2021, "vin": "VIN-1", "pricingClass": "sedan", "transportType": "open"},
		},
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestCreateEndpoint(t *testing.T) {
	t.Parallel()
	p := testPortal()
	r, store := newTestRouter(t, p)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/quotes", createBody(t)))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.inserted, 1)

	var resp struct {
		Data quote.Quote `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, p.ID, resp.Data.PortalID)
	require.Equal(t, quote.StatusQuoted, resp.Data.Status)
	require.Len(t, resp.Data.Vehicles, 1)
	require.Positive(t, resp.Data.TotalPricing.Totals.One.Open.Total)
}

func TestCreateEndpointRejectsInvalidPayloads(t *testing.T) {
	t.Parallel()
	r, store := newTestRouter(t, testPortal())

	cases := map[string]string{
		"not json":      `{"miles":`,
		"missing miles": `{"origin":{"state":"NJ"},"destination":{"state":"TX"},"vehicles":[{"make":"a","model":"b","pricingClass":"sedan","transportType":"open"}]}`,
		"bad state":     `{"origin":{"state":"New Jersey"},"destination":{"state":"TX"},"miles":100,"vehicles":[{"make":"a","model":"b","pricingClass":"sedan","transportType":"open"}]}`,
		"no vehicles":   `{"origin":{"state":"NJ"},"destination":{"state":"TX"},"miles":100,"vehicles":[]}`,
		"bad class":     `{"origin":{"state":"NJ"},"destination":{"state":"TX"},"miles":100,"vehicles":[{"make":"a","model":"b","pricingClass":"hovercraft","transportType":"open"}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBufferString(body)))
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
	require.Empty(t, store.inserted)
}

func TestEndpointsRequirePortal(t *testing.T) {
	t.Parallel()
	r, _ := newTestRouter(t, nil)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodPost, "/v1/quotes", createBody(t)),
		httptest.NewRequest(http.MethodGet, "/v1/quotes", nil),
		httptest.NewRequest(http.MethodGet, "/v1/quotes/"+uuid.NewString(), nil),
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}

func TestGetEndpoint(t *testing.T) {
	t.Parallel()
	p := testPortal()
	r, store := newTestRouter(t, p)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/quotes", createBody(t)))
	require.Equal(t, http.StatusCreated, rec.Code)
	created := store.inserted[0]

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/quotes/"+created.ID.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/quotes/"+uuid.NewString(), nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/quotes/not-a-uuid", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListEndpoint(t *testing.T) {
	t.Parallel()
	p := testPortal()
	r, _ := newTestRouter(t, p)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/quotes", createBody(t)))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/quotes?page=1&limit=10", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []quote.Quote `json:"data"`
		Meta struct {
			TotalItems int `json:"total_items"`
			TotalPages int `json:"total_pages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	require.Equal(t, 2, resp.Meta.TotalItems)
	require.Equal(t, 1, resp.Meta.TotalPages)
}
