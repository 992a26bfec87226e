package fetcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type point struct {
		X int `json:"x"`
	}
	p, err := DecodeJSON[point](strings.NewReader(`{"x": 4}`))
	require.NoError(t, err)
	assert.Equal(t, 4, p.X)

	list, err := DecodeJSON[[]point](strings.NewReader(`[{"x":1},{"x":2}]`))
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestDecodeJSON_Invalid(t *testing.T) {
	_, err := DecodeJSON[map[string]any](strings.NewReader(`{"x":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json: decode")
}
