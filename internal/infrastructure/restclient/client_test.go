package restclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ousmanedev/boutik/internal/domain/entity"
	"github.com/ousmanedev/boutik/internal/domain/repository"
	"github.com/ousmanedev/boutik/pkg/apperror"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Token: "test-token"}, nil)
}

func TestSaleListParsesEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/income", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"income": []map[string]any{
				{"id": 1, "date": "2024-03-05", "name": "Sandals", "pcs": 2, "unit_price": 5000, "total_price": 10000},
			},
		})
	})

	sales, err := NewSaleRepository(client).List(context.Background(), repository.ListOptions{})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "Sandals", sales[0].Name)
	assert.True(t, sales[0].TotalPrice.Equal(decimal.NewFromInt(10000)))
}

func TestBusinessFailureBecomesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "date is required",
		})
	})

	_, err := NewSaleRepository(client).List(context.Background(), repository.ListOptions{})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, apperror.KindAPI, appErr.Kind)
	assert.Equal(t, "date is required", appErr.Message)
}

func TestTransportFailureBecomesNetworkError(t *testing.T) {
	// Point at a server that is already gone.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := New(Config{BaseURL: srv.URL}, nil)

	_, err := NewSaleRepository(client).List(context.Background(), repository.ListOptions{})
	require.Error(t, err)
	assert.True(t, apperror.IsNetwork(err))
	assert.Contains(t, err.Error(), "Network error")
}

func TestMutationsCarryIdempotencyKey(t *testing.T) {
	var key string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		key = r.Header.Get("Idempotency-Key")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"expense": map[string]any{"id": 9, "date": "2024-03-05", "name": "Rent", "amount": 25000},
		})
	})

	_, err := NewExpenseRepository(client).Create(context.Background(), entity.CreateExpenseInput{
		Date: "2024-03-05", Name: "Rent", Amount: decimal.NewFromInt(25000),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, key)
}

func TestListQueryCarriesDateRange(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-03-01", r.URL.Query().Get("date_from"))
		assert.Equal(t, "2024-03-31", r.URL.Query().Get("date_to"))
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "debts": []any{}})
	})

	_, err := NewDebtRepository(client).List(context.Background(), repository.ListOptions{
		DateFrom: "2024-03-01",
		DateTo:   "2024-03-31",
	})
	require.NoError(t, err)
}

func TestVerifyPIN(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"valid":   body["pin"] == "1234",
		})
	})

	repo := NewConfigRepository(client)
	ok, err := repo.VerifyPIN(context.Background(), "1234")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.VerifyPIN(context.Background(), "0000")
	require.NoError(t, err)
	assert.False(t, ok)
}
