package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeJSON(t *testing.T, path string, v interface{}) {
	t.Helper()
	bb, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, bb, 0o600))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	congestionNumeric := []int{90, 90, 90, 90, 90, 90, 90, 90, 90, 90}
	distances := []float64{350, 350, 350, 350, 350, 350, 350, 350, 350, 350}
	route := datastructure.Route{Legs: []datastructure.RouteLeg{{
		Annotation: &datastructure.LegAnnotation{Distance: distances, CongestionNumeric: congestionNumeric},
		Steps: []datastructure.LegStep{{
			Intersections: []datastructure.StepIntersection{{GeometryIndex: 0}},
		}},
	}}}
	*routeFile = filepath.Join(dir, "route.json")
	*actionsFile = filepath.Join(dir, "actions.json")
	writeJSON(t, *routeFile, route)
	writeJSON(t, *actionsFile, []replayAction{
		{Action: "decrease", SpeedKmh: 80},
		{Action: "restore"},
		{Action: "bogus", SpeedKmh: 80},
	})

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), zap.NewNop(), &out))

	steps := make([]replayStep, 0)
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var step replayStep
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &step))
		steps = append(steps, step)
	}
	require.Len(t, steps, 3)

	assert.True(t, steps[0].Changed)
	assert.Equal(t, []int{59, 59, 59, 59, 59, 59, 59, 59, 90, 90}, steps[0].CongestionNumeric[0])
	require.NotNil(t, steps[0].Override)
	assert.Equal(t, 8, steps[0].Override.Length)

	assert.True(t, steps[1].Changed)
	assert.Equal(t, congestionNumeric, steps[1].CongestionNumeric[0])
	assert.Nil(t, steps[1].Override)

	assert.False(t, steps[2].Changed)
	assert.NotEmpty(t, steps[2].Error)
}

func TestRunMissingRoute(t *testing.T) {
	*routeFile = filepath.Join(t.TempDir(), "missing.json")
	assert.Error(t, run(context.Background(), zap.NewNop(), &bytes.Buffer{}))
}
