package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/blaulicht"
	"github.com/fwojciec/blaulicht/mock"
	bslog "github.com/fwojciec/blaulicht/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingParser_Fragments(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	inner := &mock.ListingParser{
		FragmentsFn: func(_ string) ([]*blaulicht.Fragment, error) {
			return []*blaulicht.Fragment{{Index: 0}, {Index: 1}}, nil
		},
	}

	fragments, err := bslog.NewLoggingParser(inner, logger).Fragments("<html></html>")

	require.NoError(t, err)
	assert.Len(t, fragments, 2)
	output := buf.String()
	assert.Contains(t, output, "msg=\"parse listing\"")
	assert.Contains(t, output, "fragments=2")
	assert.Contains(t, output, "bytes=13")
}
