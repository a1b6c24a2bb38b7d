package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qmaze/internal/engine"
)

func TestParseWalls(t *testing.T) {
	walls, err := parseWalls(" 1,1; 2 ,3;")
	require.NoError(t, err)
	assert.Equal(t, []engine.Position{{Row: 1, Col: 1}, {Row: 2, Col: 3}}, walls)

	walls, err = parseWalls("")
	require.NoError(t, err)
	assert.Nil(t, walls)

	for _, bad := range []string{"1", "a,1", "1,b", "1,2,3"} {
		_, err := parseWalls(bad)
		assert.Error(t, err, bad)
	}
}

func TestRunErrors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(nil, &out))
	assert.Error(t, run([]string{"serve"}, &out))
	assert.Error(t, run([]string{"train", "-alpha", "0"}, &out))
	assert.Error(t, run([]string{"train", "-sessions", "0"}, &out))
	assert.Error(t, run([]string{"train", "-walls", "0,0"}, &out), "start cannot be walled")
}

func TestRunTrain(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"train", "-size", "4", "-episodes", "200", "-sessions", "2", "-seed", "5", "-alpha", "0.3", "-walls", "1,1", "-color=false"}, &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "session 1 summary: episodes=200")
	assert.Contains(t, text, "session 2 summary: episodes=200")
	assert.Contains(t, text, "value table:")
	assert.Contains(t, text, " # ")
	assert.Contains(t, text, "path found:")
}
