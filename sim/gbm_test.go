package sim

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcsim/mcsim/sim/internal/testutil"
)

func TestGBMPath_ShapeAndStart(t *testing.T) {
	tests := []struct {
		name string
		days int
	}{
		{"zero horizon", 0},
		{"one day", 1},
		{"thirty days", 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := GBMPath(100, 0.05, 0.2, tt.days, 1, 42)
			require.NoError(t, err)
			assert.Len(t, p, tt.days+1)
			assert.Equal(t, 100.0, p[0])
			for i, v := range p {
				assert.Greater(t, v, 0.0, "price %d must stay positive", i)
			}
		})
	}
}

func TestGBMPath_Deterministic(t *testing.T) {
	// GIVEN identical arguments
	a, err := GBMPath(100, 0.05, 0.2, 50, 1, 7)
	require.NoError(t, err)
	b, err := GBMPath(100, 0.05, 0.2, 50, 1, 7)
	require.NoError(t, err)

	// THEN the paths are bit-for-bit identical
	assert.Equal(t, a, b)

	// AND a different seed gives a different path
	c, err := GBMPath(100, 0.05, 0.2, 50, 1, 8)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestGBMPath_FirstStepUsesSeededNormal(t *testing.T) {
	const mu, sigma, dt = 0.1, 0.3, 0.5
	p, err := GBMPath(50, mu, sigma, 1, dt, 99)
	require.NoError(t, err)

	z := NewPathRNG(99).NormFloat64()
	want := 50 * math.Exp((mu-0.5*sigma*sigma)*dt+sigma*math.Sqrt(dt)*z)
	assert.Equal(t, want, p[1])
}

func TestGBMPath_ZeroVolatilityIsDeterministicGrowth(t *testing.T) {
	// GIVEN sigma = 0 the path is S_0·exp(mu·dt·t) whatever the seed
	p, err := GBMPath(100, 0.01, 0, 10, 1, 123)
	require.NoError(t, err)
	for day, v := range p {
		testutil.AssertFloat64Equal(t, "price", 100*math.Exp(0.01*float64(day)), v, 1e-12)
	}
}

func TestGBMPath_InvalidInputs(t *testing.T) {
	tests := []struct {
		name                   string
		initial, mu, sigma, dt float64
		days                   int
	}{
		{"zero initial price", 0, 0, 0.2, 1, 10},
		{"negative initial price", -5, 0, 0.2, 1, 10},
		{"zero dt", 100, 0, 0.2, 0, 10},
		{"negative sigma", 100, 0, -0.1, 1, 10},
		{"negative days", 100, 0, 0.2, 1, -1},
		{"NaN mu", 100, math.NaN(), 0.2, 1, 10},
		{"infinite sigma", 100, 0, math.Inf(1), 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := GBMPath(tt.initial, tt.mu, tt.sigma, tt.days, tt.dt, 42)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Nil(t, p)
		})
	}
}

func TestGBMPaths_EachPathMatchesSingleGenerator(t *testing.T) {
	// GIVEN a batch from base seed 42
	paths, err := GBMPaths(context.Background(), 100, 0.05, 0.2, 20, 1, 16, 42, 4)
	require.NoError(t, err)
	require.Len(t, paths, 16)

	// THEN path i equals GBMPath with seed 42+i
	for i, p := range paths {
		single, err := GBMPath(100, 0.05, 0.2, 20, 1, 42+uint64(i))
		require.NoError(t, err)
		assert.Equal(t, single, p, "path %d", i)
	}
}

func TestGBMPaths_WorkerCountDoesNotChangeOutput(t *testing.T) {
	ctx := context.Background()
	one, err := GBMPaths(ctx, 100, 0.05, 0.2, 30, 1, 257, 42, 1)
	require.NoError(t, err)
	for _, workers := range []int{0, 2, 8, 1000} {
		got, err := GBMPaths(ctx, 100, 0.05, 0.2, 30, 1, 257, 42, workers)
		require.NoError(t, err)
		testutil.AssertPathsEqual(t, "workers", one, got)
	}
}

func TestGBMPaths_ZeroPaths(t *testing.T) {
	paths, err := GBMPaths(context.Background(), 100, 0, 0.2, 10, 1, 0, 42, 0)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestGBMPaths_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	paths, err := GBMPaths(ctx, 100, 0, 0.2, 10, 1, 1000, 42, 4)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, paths)
}

func BenchmarkGBMPaths(b *testing.B) {
	ctx := context.Background()
	for i := 0; i < b.N; i++ {
		_, _ = GBMPaths(ctx, 100, 0.05, 0.2, 252, 1, 1000, 42, 0)
	}
}
