package middleware_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stagedup/pkg/adapters/memory"
	"github.com/aretw0/stagedup/pkg/domain"
	"github.com/aretw0/stagedup/pkg/persistence/middleware"
	"github.com/aretw0/stagedup/pkg/ports"
)

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	store := middleware.Chain(memory.NewStore(), middleware.NewLoggingMiddleware(logger))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "city", ports.ContractSnapshot("city")))
	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrStageNotFound)

	out := buf.String()
	assert.Contains(t, out, "op=save")
	assert.Contains(t, out, "stage store call failed")
	assert.Contains(t, out, "stage=missing")
}

func TestChain_Contract(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	store := middleware.Chain(memory.NewStore(),
		middleware.NewLoggingMiddleware(logger),
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: bytes.Repeat([]byte{7}, 32)}),
	)
	ports.RunStageStoreContract(t, store)
}
