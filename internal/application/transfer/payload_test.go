package transfer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadJSON_SerializaCantidades(t *testing.T) {
	payload, err := payloadJSON(map[string]any{
		"shipped_qty": decimal.NewFromInt(80),
	})
	require.NoError(t, err)
	require.NotNil(t, payload)
	assert.JSONEq(t, `{"shipped_qty":"80"}`, *payload)
}

func TestPayloadJSON_ErrorDeSerializacionSePropaga(t *testing.T) {
	// Un canal no es serializable: el evento no debe quedar sin payload en silencio.
	payload, err := payloadJSON(map[string]any{
		"invalido": make(chan int),
	})
	require.Error(t, err)
	assert.Nil(t, payload)
}
