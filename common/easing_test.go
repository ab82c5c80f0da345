package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEasingEndpoints(t *testing.T) {
	for name, fn := range Easings {
		assert.InDelta(t, 0.0, fn(0), 1e-6, name)
		assert.InDelta(t, 1.0, fn(1), 1e-6, name)
	}
}

func TestEaseInOutQuadIsSymmetric(t *testing.T) {
	assert.InDelta(t, 0.5, EaseInOutQuad(0.5), 1e-6)
	assert.InDelta(t, 0.125, EaseInOutQuad(0.25), 1e-6)
	assert.InDelta(t, 0.875, EaseInOutQuad(0.75), 1e-6)
}

func TestEasingByName(t *testing.T) {
	fn, ok := EasingByName("power1.inOut")
	require.True(t, ok)
	assert.InDelta(t, EaseInOutQuad(0.3), fn(0.3), 1e-6)

	fn, ok = EasingByName("bounce")
	assert.False(t, ok)
	assert.Nil(t, fn)
}
