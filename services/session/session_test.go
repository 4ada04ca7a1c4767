package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"kisansaarthi/models"
	"kisansaarthi/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = store.Get(ctx, KeyToken)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, KeyToken, "abc"))
	require.NoError(t, store.Set(ctx, KeyUserName, "Asha Patel"))

	// A second store on the same path sees the data.
	again, err := NewFileStore(path)
	require.NoError(t, err)
	v, err := again.Get(ctx, KeyUserName)
	require.NoError(t, err)
	assert.Equal(t, "Asha Patel", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, store.Delete(ctx, KeyToken))
	require.NoError(t, store.Delete(ctx, KeyToken), "deleting twice is fine")
	_, err = store.Get(ctx, KeyToken)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = store.Get(context.Background(), KeyToken)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestKVStore(t *testing.T) {
	ctx := context.Background()
	kv := utils.NewMemoryKV()
	store := NewKVStore(kv)

	_, err := store.Get(ctx, KeyToken)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, KeyToken, "abc"))
	raw, err := kv.Get(ctx, KVPrefix+KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "abc", raw)

	require.NoError(t, store.Delete(ctx, KeyToken))
	_, err = store.Get(ctx, KeyToken)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMaterializer(t *testing.T) {
	ctx := context.Background()
	m := NewMaterializer(NewKVStore(utils.NewMemoryKV()), nil)

	sess, err := m.Current(ctx)
	require.NoError(t, err)
	assert.True(t, sess.Empty())

	require.NoError(t, m.Materialize(ctx, models.Session{Token: "tok", DisplayName: "  Asha Patel "}))
	sess, err = m.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Session{Token: "tok", DisplayName: "Asha Patel"}, sess)

	require.NoError(t, m.Clear(ctx))
	sess, err = m.Current(ctx)
	require.NoError(t, err)
	assert.True(t, sess.Empty())
}

func TestMaterializer_SkipsEmptyParts(t *testing.T) {
	ctx := context.Background()
	m := NewMaterializer(NewKVStore(utils.NewMemoryKV()), nil)

	require.NoError(t, m.Materialize(ctx, models.Session{DisplayName: "Ravi"}))
	sess, err := m.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", sess.Token)
	assert.Equal(t, "Ravi", sess.DisplayName)

	require.NoError(t, m.Materialize(ctx, models.Session{}))
	sess, err = m.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", sess.DisplayName, "an empty session changes nothing")
}

func TestMaterializer_NewTokenDropsOldName(t *testing.T) {
	ctx := context.Background()
	m := NewMaterializer(NewKVStore(utils.NewMemoryKV()), nil)

	require.NoError(t, m.Materialize(ctx, models.Session{Token: "tok-asha", DisplayName: "Asha Patel"}))
	require.NoError(t, m.Materialize(ctx, models.Session{Token: "tok-ravi", DisplayName: "   "}))

	sess, err := m.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Session{Token: "tok-ravi"}, sess)
}

func TestDescribe(t *testing.T) {
	signer := utils.NewSigner("secret")
	token, err := signer.GenerateToken("user-1", "9876543210", time.Hour)
	require.NoError(t, err)

	info, err := Describe(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", info.Subject)
	assert.Equal(t, "9876543210", info.Phone)
	assert.WithinDuration(t, time.Now().Add(time.Hour), info.ExpiresAt, 5*time.Second)
	assert.False(t, info.Expired(time.Now()))
	assert.True(t, info.Expired(time.Now().Add(2*time.Hour)))

	_, err = Describe("opaque-token")
	assert.ErrorIs(t, err, ErrOpaqueToken)
}
