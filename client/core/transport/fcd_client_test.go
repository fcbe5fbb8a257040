package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGasPrices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/txs/gas_prices", r.URL.Path)
		_, _ = w.Write([]byte(`{"uluna":"0.015","ukrw":"11.6","uusd":"0.15"}`))
	}))
	t.Cleanup(server.Close)

	client := NewFCDClient(server.URL, 5*time.Second)

	prices, err := client.GasPrices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.015", prices["uluna"])

	coin, err := client.GasPriceFor(context.Background(), "ukrw")
	require.NoError(t, err)
	assert.Equal(t, "11.6", coin.Amount)
	assert.Equal(t, "ukrw", coin.Denom)

	_, err = client.GasPriceFor(context.Background(), "ueur")
	require.Error(t, err)
}

func TestGasPricesUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client := NewFCDClient(server.URL, time.Second)
	_, err := client.GasPrices(context.Background())
	assert.ErrorIs(t, err, ErrLedgerUnavailable)
}
