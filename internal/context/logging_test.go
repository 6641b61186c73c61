package context

import (
	"bytes"
	"context"
	"testing"

	"github.com/owenthereal/tilde/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.Must(logging.Writer(&buf))

	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, Logger(ctx))

	Logger(ctx).Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestLogger_Missing(t *testing.T) {
	t.Parallel()

	logger := Logger(context.Background())
	assert.NotNil(t, logger)
	logger.Info("dropped")
}
