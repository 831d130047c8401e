package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntFieldAcceptsNumberAndString(t *testing.T) {
	var req AddProduceRequest
	require.NoError(t, json.Unmarshal([]byte(`{"quantity": 10, "price": "50"}`), &req))

	quantity, ok := req.Quantity.Int()
	assert.True(t, ok)
	assert.Equal(t, 10, quantity)

	price, ok := req.Price.Int()
	assert.True(t, ok)
	assert.Equal(t, 50, price)
}

func TestIntFieldMissingOrEmpty(t *testing.T) {
	var req AddProduceRequest
	require.NoError(t, json.Unmarshal([]byte(`{"quantity": ""}`), &req))

	_, ok := req.Quantity.Int()
	assert.False(t, ok)
	_, ok = req.Price.Int()
	assert.False(t, ok)
}

func TestIntFieldRejectsGarbage(t *testing.T) {
	var req AddProduceRequest
	err := json.Unmarshal([]byte(`{"quantity": "ten"}`), &req)
	assert.Error(t, err)
}
