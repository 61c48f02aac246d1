package sheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-inventory-sheets/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInventorySource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"values":[
			["1","A","1","Bolts","5","","","1","1"],
			["2","Z","1","Ghost","1","","","1","1"],
			["3","B"],
			["4","LB","3","Tape","2","","","1","1"]
		]}`))
	}))
	defer srv.Close()

	core, logs := observer.New(zapcore.WarnLevel)
	client := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "k"})
	src := NewInventorySource(client, "sheet-1", "Inventory!A2:I", zap.New(core))
	require.True(t, src.Configured())

	before := testutil.ToFloat64(metrics.SyncRowsDroppedTotal.WithLabelValues("inventory", "rack"))

	items, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Bolts", items[0].ItemName)
	assert.Equal(t, "Tape", items[1].ItemName)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Z", logs.All()[0].ContextMap()["value"])
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.SyncRowsDroppedTotal.WithLabelValues("inventory", "rack")))
}

func TestUserSource_NotConfigured(t *testing.T) {
	client := NewClient(ClientConfig{APIKey: "k"})
	src := NewUserSource(client, "", "Users!A2:K", zap.NewNop())
	assert.False(t, src.Configured())

	_, err := src.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestUserSource_EmptySheet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"range":"Users!A2:K"}`))
	}))
	defer srv.Close()

	src := NewUserSource(NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "k"}), "users-1", "Users!A2:K", zap.NewNop())
	users, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}
