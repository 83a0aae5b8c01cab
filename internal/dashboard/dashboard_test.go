package dashboard

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewStartsFullyCoherent(t *testing.T) {
	d := New()
	assert.Equal(t, 0, d.ActiveNodes)
	assert.Equal(t, 0.0, d.NetworkLoad)
	assert.Equal(t, 100.0, d.Coherence)
}

func TestStepStaysInRange(t *testing.T) {
	d := New()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 5000; i++ {
		prevLoad, prevCoh := d.NetworkLoad, d.Coherence
		d.Step(rng)

		require.GreaterOrEqual(t, d.ActiveNodes, 150)
		require.Less(t, d.ActiveNodes, 200)
		require.GreaterOrEqual(t, d.NetworkLoad, 0.0)
		require.LessOrEqual(t, d.NetworkLoad, 100.0)
		require.GreaterOrEqual(t, d.Coherence, 0.0)
		require.LessOrEqual(t, d.Coherence, 100.0)
		require.LessOrEqual(t, abs(d.NetworkLoad-prevLoad), 10.0)
		require.LessOrEqual(t, abs(d.Coherence-prevCoh), 2.5)
	}
	assert.Equal(t, 5000, d.Steps)
}

func TestTiles(t *testing.T) {
	d := &Dashboard{ActiveNodes: 175, NetworkLoad: 50, Coherence: 90}
	tiles := d.Tiles()

	assert.Equal(t, 262, tiles.ActiveConnections)
	assert.InDelta(t, 60.0, tiles.DataTransfer, 1e-9)
	assert.Equal(t, 87, tiles.EntangledPairs)
	assert.Equal(t, 87, tiles.MemoryUsage)
	assert.Equal(t, 17, tiles.ProcessingUnits)
	assert.InDelta(t, 87.5, tiles.HealthBar, 1e-9)
}

func TestHealthBarCapped(t *testing.T) {
	d := &Dashboard{ActiveNodes: 260}
	assert.Equal(t, 100.0, d.Tiles().HealthBar)
	assert.Equal(t, 130, d.Tiles().MemoryUsage)
}

type mockSampler struct {
	mock.Mock
}

func (m *mockSampler) CPUPercent() (float64, error) {
	args := m.Called()
	return args.Get(0).(float64), args.Error(1)
}

func TestHostLoad(t *testing.T) {
	tests := []struct {
		name string
		pct  float64
		err  error
		want float64
	}{
		{"reading", 42.5, nil, 42.5},
		{"error", 99, errors.New("no procfs"), 0},
		{"over range", 130, nil, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := new(mockSampler)
			s.On("CPUPercent").Return(tt.pct, tt.err).Once()

			assert.Equal(t, tt.want, HostLoad(s))
			s.AssertExpectations(t)
		})
	}
}

func TestNextSkipsDisabledViews(t *testing.T) {
	assert.Equal(t, "chip", Next("network").Name)
	assert.Equal(t, "network", Next("chip").Name)
	assert.Equal(t, "network", Next("starlink").Name)
	assert.Equal(t, "network", Next("bogus").Name)
}

func TestLookup(t *testing.T) {
	v, ok := Lookup("deepspace")
	require.True(t, ok)
	assert.False(t, v.Enabled)

	_, ok = Lookup("mars")
	assert.False(t, ok)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
