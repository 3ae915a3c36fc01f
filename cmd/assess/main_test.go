package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLocalHour(t *testing.T) {
	t.Run("explicit hour passes through", func(t *testing.T) {
		got, err := resolveLocalHour(14, "America/New_York")
		require.NoError(t, err)
		assert.Equal(t, 14, got)
	})

	t.Run("boundary hours are valid", func(t *testing.T) {
		for _, h := range []int{0, 23} {
			got, err := resolveLocalHour(h, "UTC")
			require.NoError(t, err)
			assert.Equal(t, h, got)
		}
	})

	t.Run("unset falls back to timezone clock", func(t *testing.T) {
		got, err := resolveLocalHour(-1, "UTC")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 23)
	})

	t.Run("negative hour other than sentinel is rejected", func(t *testing.T) {
		_, err := resolveLocalHour(-5, "UTC")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "-hour -5")
	})

	t.Run("hour above 23 is rejected", func(t *testing.T) {
		_, err := resolveLocalHour(24, "UTC")
		require.Error(t, err)
	})

	t.Run("bad timezone is rejected", func(t *testing.T) {
		_, err := resolveLocalHour(-1, "Atlantis/Lost")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Atlantis/Lost")
	})
}
