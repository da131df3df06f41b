package price

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientPrices(t *testing.T) {
	var mu sync.Mutex
	var requests []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests = append(requests, r.URL.Query().Get("ids"))
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{
			"mintA":{"id":"mintA","type":"derivedPrice","price":"1.5"},
			"mintB":{"id":"mintB","type":"derivedPrice","price":2},
			"mintC":null,
			"mintD":{"id":"mintD","type":"derivedPrice","price":null}
		},"timeTaken":0.01}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, BatchSize: 2}, nil)
	prices, err := client.Prices(context.Background(), []string{"mintA", "mintB", "mintC", "mintD"})
	require.NoError(t, err)

	require.Equal(t, map[string]float64{"mintA": 1.5, "mintB": 2}, prices)
	require.Len(t, requests, 2)
	require.Equal(t, "mintA,mintB", requests[0])
	require.Equal(t, "mintC,mintD", requests[1])
}

func TestClientPricesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Query().Get("ids"), "bad") {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"good":{"price":"3"}}}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, BatchSize: 1}, nil)
	prices, err := client.Prices(context.Background(), []string{"good", "bad"})
	require.Error(t, err)
	require.Equal(t, map[string]float64{"good": 3}, prices)
}

func TestClientPricesEmpty(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1"}, nil)
	prices, err := client.Prices(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, prices)
}
