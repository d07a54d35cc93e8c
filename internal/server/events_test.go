package server

import (
	"context"
	"testing"

	"storefront/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenEventsDisabled(t *testing.T) {
	events, err := OpenEvents(&config.Config{EventsDriver: "none"})
	require.NoError(t, err)

	assert.Nil(t, events.Publisher)
	assert.NoError(t, events.StartAudit(context.Background()))
	assert.NoError(t, events.Close())
}

func TestOpenEventsKafkaNeedsBrokers(t *testing.T) {
	_, err := OpenEvents(&config.Config{EventsDriver: "kafka"})
	assert.Error(t, err)
}

func TestLogOrderEvent(t *testing.T) {
	ctx := context.Background()

	err := LogOrderEvent(ctx, []byte(`{"event":"order.created","order_number":"ORD20240301001","status":"pending","total":"210.00"}`))
	assert.NoError(t, err)

	assert.Error(t, LogOrderEvent(ctx, []byte("{not json")))
	assert.Error(t, LogOrderEvent(ctx, []byte(`{"event":"order.created"}`)))
}

func TestCorsConfig(t *testing.T) {
	assert.Equal(t, "*", corsConfig("").AllowOrigins)
	assert.False(t, corsConfig("*").AllowCredentials)

	cfg := corsConfig("https://shop.example.com")
	assert.Equal(t, "https://shop.example.com", cfg.AllowOrigins)
	assert.True(t, cfg.AllowCredentials)
}
