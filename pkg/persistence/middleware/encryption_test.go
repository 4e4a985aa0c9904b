package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stagedup/pkg/adapters/memory"
	"github.com/aretw0/stagedup/pkg/domain"
	"github.com/aretw0/stagedup/pkg/persistence/middleware"
	"github.com/aretw0/stagedup/pkg/ports"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ports.RunStageStoreContract(t, mw(memory.NewStore()))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := memory.NewStore()
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	secure := mw(underlying)
	ctx := context.Background()

	original := ports.ContractSnapshot("city")
	require.NoError(t, secure.Save(ctx, "city", original))

	stored, err := underlying.Load(ctx, "city")
	require.NoError(t, err)
	assert.Empty(t, stored.Prims, "prims must not be stored in the clear")
	assert.NotEmpty(t, stored.Sealed)

	loaded, err := secure.Load(ctx, "city")
	require.NoError(t, err)
	assert.Nil(t, domain.DiffSnapshots(original, loaded))
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlying := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)
	ctx := context.Background()

	old := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlying)
	require.NoError(t, old.Save(ctx, "city", ports.ContractSnapshot("city")))

	rotated := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlying)
	loaded, err := rotated.Load(ctx, "city")
	require.NoError(t, err)
	assert.Len(t, loaded.Prims, 3)

	strict := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: newKey})(underlying)
	_, err = strict.Load(ctx, "city")
	assert.ErrorContains(t, err, "failed to decrypt stage")
}

func TestEncryptionMiddleware_RejectsPlainStages(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, underlying.Save(ctx, "plain", ports.ContractSnapshot("plain")))

	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	_, err := secure.Load(ctx, "plain")
	assert.ErrorContains(t, err, "missing encrypted data envelope")
}

func TestEncryptionMiddleware_BadKeyPanics(t *testing.T) {
	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short")})
	})
}

func TestEncryptionMiddleware_KeySizes(t *testing.T) {
	ctx := context.Background()
	for _, size := range []int{16, 24, 32} {
		key := make([]byte, size)
		_, err := io.ReadFull(rand.Reader, key)
		require.NoError(t, err)

		secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})(memory.NewStore())
		require.NoError(t, secure.Save(ctx, "city", ports.ContractSnapshot("city")))
		loaded, err := secure.Load(ctx, "city")
		require.NoError(t, err)
		assert.Len(t, loaded.Prims, 3)
	}

	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: make([]byte, 20)})
	})
}
