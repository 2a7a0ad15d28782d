package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceZero(t *testing.T) {
	d := Distance(18.5204, 73.8567, 18.5204, 73.8567)
	assert.InDelta(t, 0, d, 1e-9)
}

func TestDistanceKnownPairs(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantKm                 float64
		tolerance              float64
	}{
		{
			// Pune station to Shivajinagar, roughly 2 km apart
			name: "short hop",
			lat1: 18.5289, lon1: 73.8744,
			lat2: 18.5308, lon2: 73.8470,
			wantKm: 2.9, tolerance: 0.3,
		},
		{
			name: "mumbai to pune",
			lat1: 19.0760, lon1: 72.8777,
			lat2: 18.5204, lon2: 73.8567,
			wantKm: 119.0, tolerance: 2.0,
		},
		{
			name: "one degree of latitude",
			lat1: 10.0, lon1: 20.0,
			lat2: 11.0, lon2: 20.0,
			wantKm: 111.19, tolerance: 0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.wantKm, d, tt.tolerance)
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	coords := [][4]float64{
		{18.52, 73.85, 18.55, 73.88},
		{0, 0, 45, 90},
		{-33.86, 151.20, 51.50, -0.12},
	}

	for _, c := range coords {
		forward := Distance(c[0], c[1], c[2], c[3])
		backward := Distance(c[2], c[3], c[0], c[1])
		assert.InDelta(t, forward, backward, 1e-9)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 2.35, Round2(2.345))
	assert.Equal(t, 2.99, Round2(2.994))
	assert.Equal(t, 3.0, Round2(2.999))
	assert.Equal(t, 0.0, Round2(0.004))
}

func TestDistanceNeverNegative(t *testing.T) {
	d := Distance(-89.9, -179.9, 89.9, 179.9)
	assert.True(t, d > 0)
	assert.False(t, math.IsNaN(d))
}
