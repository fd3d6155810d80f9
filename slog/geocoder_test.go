package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/blaulicht"
	"github.com/fwojciec/blaulicht/mock"
	bslog "github.com/fwojciec/blaulicht/slog"
	"github.com/stretchr/testify/assert"
)

func TestLoggingGeocoder_Geocode(t *testing.T) {
	t.Parallel()

	t.Run("logs resolved location at debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Geocoder{
			GeocodeFn: func(_ context.Context, _ string) blaulicht.GeocodeResult {
				return blaulicht.Resolved(52.52, 13.405)
			},
		}

		result := bslog.NewLoggingGeocoder(inner, logger).Geocode(context.Background(), "Berlin")

		assert.Equal(t, blaulicht.Resolved(52.52, 13.405), result)
		output := buf.String()
		assert.Contains(t, output, "msg=geocode")
		assert.Contains(t, output, "location=Berlin")
		assert.Contains(t, output, "resolved=true")
		assert.Contains(t, output, "lat=52.52")
	})

	t.Run("stays quiet above debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Geocoder{
			GeocodeFn: func(_ context.Context, _ string) blaulicht.GeocodeResult {
				return blaulicht.Unresolved
			},
		}

		result := bslog.NewLoggingGeocoder(inner, logger).Geocode(context.Background(), "Berlin")

		assert.Equal(t, blaulicht.Unresolved, result)
		assert.Empty(t, buf.String())
	})
}
