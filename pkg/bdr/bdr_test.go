package bdr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name      string
		budget    float64
		period    float64
		wantAlpha float64
		wantDelta float64
		wantOK    bool
	}{
		{"full budget", 5, 5, 1.0, 0, true},
		{"half budget", 2, 4, 0.5, 4, true},
		{"zero budget", 0, 10, 0, 20, true},
		{"zero period", 5, 0, 0, 0, false},
		{"negative period", 5, -1, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iface, ok := Derive(tt.budget, tt.period)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.InDelta(t, tt.wantAlpha, iface.Alpha, EPSILON)
				assert.InDelta(t, tt.wantDelta, iface.Delta, EPSILON)
			}
		})
	}
}

func TestSupplyBound(t *testing.T) {
	iface := Interface{Alpha: 0.5, Delta: 4}

	assert.Equal(t, 0.0, SupplyBound(iface, 0))
	assert.Equal(t, 0.0, SupplyBound(iface, 3.9))
	assert.InDelta(t, 0.0, SupplyBound(iface, 4), EPSILON)
	assert.InDelta(t, 3.0, SupplyBound(iface, 10), EPSILON)
}

func TestSupplyBoundZero(t *testing.T) {
	assert.Equal(t, 0.0, SupplyBoundZero(0))
	assert.Equal(t, 0.0, SupplyBoundZero(1000))
}

func TestCloseToZero(t *testing.T) {
	assert.True(t, CloseToZero(0))
	assert.True(t, CloseToZero(1e-10))
	assert.False(t, CloseToZero(1e-6))
	assert.False(t, CloseToZero(-0.5))
}
