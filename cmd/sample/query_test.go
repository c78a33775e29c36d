package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	v, err := parseQuery("https://example.com/?shape=rectangle&center=dr5regw3")
	require.NoError(t, err)
	assert.Equal(t, "rectangle", v.Get("shape"))
	assert.Equal(t, "dr5regw3", v.Get("center"))

	v, err = parseQuery("shape=polygon&points=abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", v.Get("points"))

	_, err = parseQuery("bad=%zz")
	assert.Error(t, err)
}
