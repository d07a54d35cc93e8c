package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageKey(t *testing.T) {
	body := []byte(`{"event":"order.created","order_number":"ORD20240301007"}`)
	assert.Equal(t, []byte("ORD20240301007"), messageKey("order.created", body))

	assert.Equal(t, []byte("order.created"), messageKey("order.created", []byte(`{"event":"order.created"}`)))
	assert.Equal(t, []byte("order.created"), messageKey("order.created", []byte("not json")))
}
