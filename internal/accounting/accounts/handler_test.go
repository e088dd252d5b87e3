package accounts

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akount/akount/internal/money"
)

func newTestRouter(svc AccountService) http.Handler {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)
	r := chi.NewRouter()
	r.Route("/entities/{entityID}", h.MountRoutes)
	return r
}

func TestByCurrencyEndpoint(t *testing.T) {
	entity := uuid.New()
	repo := &memRepo{accounts: []Account{
		{ID: uuid.New(), EntityID: entity, Name: "CAD", Currency: money.CAD, CurrentBalance: money.FromInt(50000)},
		{ID: uuid.New(), EntityID: entity, Name: "USD", Currency: money.USD, CurrentBalance: money.FromInt(-300000)},
		{ID: uuid.New(), EntityID: entity, Name: "EUR", Currency: money.EUR, CurrentBalance: money.FromInt(100000)},
	}}
	router := newTestRouter(NewService(repo, nil, nil))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/entities/"+entity.String()+"/accounts/by-currency", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Groups []struct {
			Currency       string `json:"currency"`
			TotalBalance   int64  `json:"totalBalance"`
			TotalFormatted string `json:"totalFormatted"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Groups, 3)
	assert.Equal(t, "USD", body.Groups[0].Currency)
	assert.Equal(t, int64(-300000), body.Groups[0].TotalBalance)
	assert.Equal(t, "-$3,000.00", body.Groups[0].TotalFormatted)
	assert.Equal(t, "EUR", body.Groups[1].Currency)
	assert.Equal(t, "CAD", body.Groups[2].Currency)
	assert.Equal(t, "$500.00", body.Groups[2].TotalFormatted)
}

func TestCreateEndpoint(t *testing.T) {
	entity := uuid.New()
	router := newTestRouter(NewService(&memRepo{}, nil, nil))

	payload := `{"name":"Petty cash","type":"ASSET","currency":"JPY","openingBalance":1050}`
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/entities/"+entity.String()+"/accounts", strings.NewReader(payload)))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created AccountView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, money.JPY, created.Currency)
	assert.Equal(t, money.FromInt(1050), created.CurrentBalance)
	assert.Equal(t, "¥1,050", created.BalanceFormatted)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/entities/"+entity.String()+"/accounts", strings.NewReader(payload)))
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestCreateEndpointRejectsBadInput(t *testing.T) {
	router := newTestRouter(NewService(&memRepo{}, nil, nil))
	entity := uuid.New().String()

	cases := []string{
		`{"name":"X","type":"ASSET","currency":"XYZ"}`,
		`{"name":"X","type":"LOAN","currency":"CAD"}`,
		`{"name":"X","type":"ASSET","currency":"CAD","openingBalance":10.5}`,
		`not json`,
	}
	for _, payload := range cases {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/entities/"+entity+"/accounts", strings.NewReader(payload)))
		assert.Equal(t, http.StatusBadRequest, rr.Code, payload)
	}
}

func TestInvalidEntityID(t *testing.T) {
	router := newTestRouter(NewService(&memRepo{}, nil, nil))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/entities/not-a-uuid/accounts", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
