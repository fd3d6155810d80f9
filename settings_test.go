package blaulicht_test

import (
	"testing"

	"github.com/fwojciec/blaulicht"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts defaults", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, blaulicht.DefaultSettings().Validate())
	})

	t.Run("rejects relative target URL", func(t *testing.T) {
		t.Parallel()

		s := blaulicht.DefaultSettings()
		s.TargetURL = "/blaulicht/"

		err := s.Validate()

		assert.Equal(t, blaulicht.EINVALID, blaulicht.ErrorCode(err))
	})

	t.Run("rejects unknown failure policy", func(t *testing.T) {
		t.Parallel()

		s := blaulicht.DefaultSettings()
		s.FailurePolicy = "retry"

		err := s.Validate()

		assert.Equal(t, blaulicht.EINVALID, blaulicht.ErrorCode(err))
	})

	t.Run("rejects negative max items", func(t *testing.T) {
		t.Parallel()

		s := blaulicht.DefaultSettings()
		s.MaxItems = -1

		assert.Error(t, s.Validate())
	})

	t.Run("rejects zero timeout", func(t *testing.T) {
		t.Parallel()

		s := blaulicht.DefaultSettings()
		s.RequestTimeout = 0

		assert.Error(t, s.Validate())
	})
}

func TestSettings_Origin(t *testing.T) {
	t.Parallel()

	origin, err := blaulicht.DefaultSettings().Origin()

	require.NoError(t, err)
	assert.Equal(t, "https://www.presseportal.de", origin)
}
