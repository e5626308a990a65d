package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *BoltStore {
	t.Helper()

	store, err := OpenBoltStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBoltStore(t *testing.T) {
	t.Parallel()

	t.Run("find unknown user", func(t *testing.T) {
		t.Parallel()

		store := openTestStore(t)

		user, err := store.Find("nobody")
		require.ErrorIs(t, err, ErrUserNotFound)
		assert.Nil(t, user)
	})

	t.Run("save and find round trip", func(t *testing.T) {
		t.Parallel()

		store := openTestStore(t)

		saved := &User{
			ID:        uuid.New(),
			Username:  "alice",
			CreatedAt: time.Now().UTC().Truncate(time.Second),
			Keys: []KeyRecord{{
				ID:        uuid.New(),
				CreatedAt: time.Now().UTC().Truncate(time.Second),
				Salt:      "0102030405060708090a0b0c0d0e0f10",
				Hash:      "deadbeef",
			}},
		}
		require.NoError(t, store.Save(saved))

		found, err := store.Find("alice")
		require.NoError(t, err)
		assert.Equal(t, saved.ID, found.ID)
		assert.Equal(t, saved.Username, found.Username)
		require.Len(t, found.Keys, 1)
		assert.Equal(t, saved.Keys[0].Salt, found.Keys[0].Salt)
		assert.Equal(t, saved.Keys[0].Hash, found.Keys[0].Hash)
	})

	t.Run("save is an upsert", func(t *testing.T) {
		t.Parallel()

		store := openTestStore(t)

		user := &User{ID: uuid.New(), Username: "bob", CreatedAt: time.Now().UTC()}
		require.NoError(t, store.Save(user))

		user.Keys = append(user.Keys, KeyRecord{ID: uuid.New(), Salt: "aa", Hash: "bb"})
		require.NoError(t, store.Save(user))

		found, err := store.Find("bob")
		require.NoError(t, err)
		assert.Len(t, found.Keys, 1)
	})

	t.Run("survives reopen", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		store, err := OpenBoltStore(dir)
		require.NoError(t, err)
		require.NoError(t, store.Save(&User{ID: uuid.New(), Username: "carol"}))
		require.NoError(t, store.Close())

		reopened, err := OpenBoltStore(dir)
		require.NoError(t, err)
		t.Cleanup(func() { _ = reopened.Close() })

		found, err := reopened.Find("carol")
		require.NoError(t, err)
		assert.Equal(t, "carol", found.Username)
	})
}
