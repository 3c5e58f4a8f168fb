package repository_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fernet/fernet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/testutil"
)

func newKey(t *testing.T) string {
	t.Helper()
	var k fernet.Key
	require.NoError(t, k.Generate())
	return k.Encode()
}

func TestStateRepository_PlainValues(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewStateRepository(db)

	_, _, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrStateNotFound)

	require.NoError(t, repo.Put(ctx, "k", `{"a":1}`))
	require.NoError(t, repo.Put(ctx, "k", `{"a":2}`))

	value, updatedAt, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, value)
	assert.False(t, updatedAt.IsZero())
	testutil.AssertRowCount(t, db, "app_state", 1)

	require.NoError(t, repo.Delete(ctx, "k"))
	require.NoError(t, repo.Delete(ctx, "k"))
	_, _, err = repo.Get(ctx, "k")
	assert.ErrorIs(t, err, apperrors.ErrStateNotFound)
}

func TestStateRepository_Encryption(t *testing.T) {
	ctx := context.Background()

	t.Run("stores ciphertext and reads it back", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo, err := repository.NewStateRepository(db).WithEncryptionKey(newKey(t))
		require.NoError(t, err)
		require.True(t, repo.Encrypted())

		require.NoError(t, repo.Put(ctx, "k", `[1,2,3]`))

		var raw string
		require.NoError(t, db.QueryRow(`SELECT value FROM app_state WHERE key = 'k'`).Scan(&raw))
		assert.False(t, strings.Contains(raw, "1,2,3"), "value must not be stored in clear text")

		value, _, err := repo.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, `[1,2,3]`, value)
	})

	t.Run("reads plain state written before encryption was enabled", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		plain := repository.NewStateRepository(db)
		require.NoError(t, plain.Put(ctx, "k", `[]`))

		encrypted, err := plain.WithEncryptionKey(newKey(t))
		require.NoError(t, err)

		value, _, err := encrypted.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, `[]`, value)
	})

	t.Run("wrong or missing key locks the state", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		writer, err := repository.NewStateRepository(db).WithEncryptionKey(newKey(t))
		require.NoError(t, err)
		require.NoError(t, writer.Put(ctx, "k", `[]`))

		reader, err := repository.NewStateRepository(db).WithEncryptionKey(newKey(t))
		require.NoError(t, err)

		_, _, err = reader.Get(ctx, "k")
		assert.ErrorIs(t, err, apperrors.ErrStateLocked)

		_, _, err = repository.NewStateRepository(db).Get(ctx, "k")
		assert.ErrorIs(t, err, apperrors.ErrStateLocked)
	})

	t.Run("empty key disables encryption", func(t *testing.T) {
		repo, err := repository.NewStateRepository(testutil.SetupTestDB(t)).WithEncryptionKey("")
		require.NoError(t, err)
		assert.False(t, repo.Encrypted())
	})

	t.Run("rejects invalid key", func(t *testing.T) {
		_, err := repository.NewStateRepository(testutil.SetupTestDB(t)).WithEncryptionKey("short")
		assert.Error(t, err)
	})
}

func TestAssetRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("round trips the collection", func(t *testing.T) {
		repo := testutil.NewTestAssetRepository(t, testutil.SetupTestDB(t))
		assets := []model.Asset{
			testutil.NewAsset().Crypto("BTC").Build(),
			testutil.NewAsset().BankAccount("HDFC", 1000).Build(),
		}

		require.NoError(t, repo.Save(ctx, assets))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, assets, got)
	})

	t.Run("missing state", func(t *testing.T) {
		repo := testutil.NewTestAssetRepository(t, testutil.SetupTestDB(t))

		_, err := repo.Load(ctx)

		assert.ErrorIs(t, err, apperrors.ErrStateNotFound)
	})

	t.Run("nil collection saves as empty list", func(t *testing.T) {
		repo := testutil.NewTestAssetRepository(t, testutil.SetupTestDB(t))

		require.NoError(t, repo.Save(ctx, nil))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("garbage is malformed state", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		state := repository.NewStateRepository(db)
		require.NoError(t, state.Put(ctx, repository.AssetsStateKey, `{"not":"a list"}`))

		_, err := repository.NewAssetRepository(state).Load(ctx)

		assert.ErrorIs(t, err, apperrors.ErrMalformedState)
	})
}
