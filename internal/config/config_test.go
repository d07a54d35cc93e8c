package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(overrides map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newTestViper(map[string]any{"JWT_SECRET": "secret"}))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, "none", cfg.EventsDriver)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
}

func TestFromViper_RequiresSecret(t *testing.T) {
	_, err := fromViper(newTestViper(nil))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestFromViper_RejectsUnknownDrivers(t *testing.T) {
	_, err := fromViper(newTestViper(map[string]any{"JWT_SECRET": "s", "DATABASE_DRIVER": "mysql"}))
	assert.Error(t, err)

	_, err = fromViper(newTestViper(map[string]any{"JWT_SECRET": "s", "EVENTS_DRIVER": "nats"}))
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a:1", "b:2"}, splitList(" a:1, ,b:2 "))
	assert.Nil(t, splitList(""))
}
