package congestion_test

import (
	"testing"

	"github.com/lintang-b-s/navtraffic/pkg/congestion"
	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncreaseTraffic(t *testing.T) {
	cases := []struct {
		name             string
		congestion       []int
		fixture          func(f *legFixture)
		expected         []int
		expectedOverride *datastructure.CongestionNumericOverride
	}{
		{
			name:       "increase low congestion within look-ahead distance",
			congestion: uniform(0, 12),
			fixture:    func(f *legFixture) { f.speedKmh = 80 },
			expected:   []int{40, 40, 40, 40, 40, 40, 40, 40, 0, 0, 0, 0},
			expectedOverride: &datastructure.CongestionNumericOverride{
				LegIndex: 0, StartIndex: 0, Length: 12,
			},
		},
		{
			name:       "stop increasing before non motorway intersection",
			congestion: uniform(0, 12),
			fixture:    func(f *legFixture) { f.nonMotorwayIndex = 9 },
			expected:   []int{40, 40, 40, 40, 40, 40, 40, 40, 40, 0, 0, 0},
			expectedOverride: &datastructure.CongestionNumericOverride{
				LegIndex: 0, StartIndex: 0, Length: 9,
			},
		},
		{
			name:       "raise every band by one and keep severe",
			congestion: []int{10, 45, 65, 85, 120, 0},
			expected:   []int{40, 60, 80, 85, 120, 40},
			expectedOverride: &datastructure.CongestionNumericOverride{
				LegIndex: 0, StartIndex: 0, Length: 6,
			},
		},
		{
			name:       "scan window starts at the current position",
			congestion: uniform(40, 20),
			fixture: func(f *legFixture) {
				f.geometryIndex = 5
				f.speedKmh = 200
			},
			expected: append(append(uniform(40, 5), uniform(60, 12)...), uniform(40, 3)...),
			expectedOverride: &datastructure.CongestionNumericOverride{
				LegIndex: 0, StartIndex: 5, Length: 12,
			},
		},
	}

	handler := congestion.NewIncreaseHandler(defaultRanges, congestion.DefaultHandlerOptions())
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := defaultFixture()
			if c.fixture != nil {
				c.fixture(&f)
			}
			action := f.increase(c.congestion)

			route, changed, err := handler.Handle(action)
			require.NoError(t, err)
			require.True(t, changed)

			assert.Equal(t, c.expected, route.Legs[0].CongestionNumeric())
			assert.Equal(t, c.expectedOverride, route.OverriddenTraffic)
			assert.False(t, route.OverriddenTraffic.Restorable())
		})
	}
}

func TestIncreaseTrafficUnchanged(t *testing.T) {
	handler := congestion.NewIncreaseHandler(defaultRanges, congestion.DefaultHandlerOptions())

	f := defaultFixture()
	f.geometryIndex = 12
	action := f.increase(uniform(0, 12))
	route, changed, err := handler.Handle(action)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, action.Route, route)

	action = defaultFixture().increase(uniform(0, 12))
	action.Route.Legs[0].Annotation = nil
	_, changed, err = handler.Handle(action)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestIncreaseTrafficScanSegmentsOption(t *testing.T) {
	opts := congestion.DefaultHandlerOptions()
	opts.IncreaseScanSegments = 3
	handler := congestion.NewIncreaseHandler(defaultRanges, opts)

	route, changed, err := handler.Handle(defaultFixture().increase(uniform(0, 6)))
	require.NoError(t, err)
	require.True(t, changed)

	assert.Equal(t, []int{40, 40, 40, 0, 0, 0}, route.Legs[0].CongestionNumeric())
	assert.Equal(t, 3, route.OverriddenTraffic.Length)
}
