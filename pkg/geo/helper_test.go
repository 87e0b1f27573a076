package geo

import (
	"testing"

	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
	"github.com/stretchr/testify/assert"
)

func TestSimplifyPath(t *testing.T) {
	almostStraight := []datastructure.Coordinate{
		{Lat: -7.565837, Lon: 110.831586},
		{Lat: -7.566063, Lon: 110.832379},
		{Lat: -7.566406, Lon: 110.833232},
	}
	assert.Len(t, SimplifyPath(almostStraight, OverviewToleranceMeters), 2)

	corner := []datastructure.Coordinate{
		{Lat: -7.5600, Lon: 110.8300},
		{Lat: -7.5600, Lon: 110.8310},
		{Lat: -7.5610, Lon: 110.8310},
	}
	assert.Equal(t, corner, SimplifyPath(corner, OverviewToleranceMeters))

	// a small zigzag is removed with a wide tolerance only
	zigzag := []datastructure.Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 0.0002, Lon: 0.001},
		{Lat: 0, Lon: 0.002},
		{Lat: 0.0002, Lon: 0.003},
		{Lat: 0, Lon: 0.004},
	}
	assert.Len(t, SimplifyPath(zigzag, OverviewToleranceMeters), 5)
	assert.Len(t, SimplifyPath(zigzag, 30), 2)

	assert.Len(t, SimplifyPath(zigzag[:2], OverviewToleranceMeters), 2)
}
