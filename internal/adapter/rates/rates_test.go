package rates

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinGecko_FetchBTCRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "bitcoin", r.URL.Query().Get("ids"))
		assert.Equal(t, "usd,eur,chf", r.URL.Query().Get("vs_currencies"))
		assert.Equal(t, "demo-key", r.Header.Get("x-cg-demo-api-key"))
		_, _ = w.Write([]byte(`{"bitcoin":{"usd":64250.123456789,"eur":59010}}`))
	}))
	defer srv.Close()

	src := NewCoinGecko(srv.URL, "demo-key", time.Second)
	got, err := src.FetchBTCRates(context.Background(), []string{"USD", "EUR", "CHF"})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.True(t, got["USD"].Equal(decimal.RequireFromString("64250.123456789")), "price text is kept exactly")
	assert.True(t, got["EUR"].Equal(decimal.NewFromInt(59010)))
	_, hasCHF := got["CHF"]
	assert.False(t, hasCHF)
	assert.Equal(t, "coingecko", src.Name())
}

func TestCoinGecko_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, wantErr: ErrUpstreamRateLimited},
		{name: "server error", status: http.StatusInternalServerError},
		{name: "missing bitcoin", status: http.StatusOK, body: `{"ethereum":{"usd":1}}`},
		{name: "garbage", status: http.StatusOK, body: `nope`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewCoinGecko(srv.URL, "", time.Second).FetchBTCRates(context.Background(), []string{"USD"})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
			}
		})
	}
}

func TestStatic_FetchBTCRates(t *testing.T) {
	src := NewStatic(map[string]float64{"usd": 50000, "EUR": 46000.5, "GBP": 0})

	got, err := src.FetchBTCRates(context.Background(), []string{"USD", "eur", "GBP", "JPY"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.True(t, got["USD"].Equal(decimal.NewFromInt(50000)))
	assert.True(t, got["EUR"].Equal(decimal.RequireFromString("46000.5")))
	assert.Equal(t, "static", src.Name())
}
