package session

import (
	"path/filepath"
	"testing"
	"time"

	"nearbasket/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()

	return NewFileStore(filepath.Join(t.TempDir(), "nested", "session.json"))
}

func newCustomer() *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		MobileNumber: "5550001",
		Name:         "Ada",
		Role:         entity.RoleCustomer,
	}
}

func signedToken(t *testing.T, ttl time.Duration) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return signed
}

func TestFileStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	// Fresh install: empty state, no error.
	state, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, state.AccessToken)
	assert.Nil(t, state.User)

	user := newCustomer()
	require.NoError(t, store.Save(&State{AccessToken: "access", RefreshToken: "refresh", User: user}))

	state, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "access", state.AccessToken)
	assert.Equal(t, "refresh", state.RefreshToken)
	require.NotNil(t, state.User)
	assert.Equal(t, user.ID, state.User.ID)

	require.NoError(t, store.Clear())
	state, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, state.AccessToken)

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}

func TestSession_EstablishResolvesCapabilitiesOnce(t *testing.T) {
	sess := New(newTestStore(t))

	require.False(t, sess.Authenticated())
	assert.Equal(t, Capabilities{}, sess.Can())

	require.NoError(t, sess.Establish(newCustomer(), "access", "refresh"))
	assert.True(t, sess.Authenticated())
	assert.Equal(t, Capabilities{PlaceOrders: true, JoinShops: true}, sess.Can())
	assert.Equal(t, "access", sess.AccessToken())

	shopID := uuid.New()
	keeper := &entity.User{ID: uuid.New(), Role: entity.RoleShopkeeper, ShopID: &shopID}
	require.NoError(t, sess.Establish(keeper, "access2", ""))
	assert.Equal(t, Capabilities{ManageShop: true, TransitionOrders: true}, sess.Can())
}

func TestSession_InitRestoresPersistedIdentity(t *testing.T) {
	store := newTestStore(t)

	first := New(store)
	user := newCustomer()
	require.NoError(t, first.Establish(user, "access", "refresh"))

	second := New(store)
	require.NoError(t, second.Init())
	assert.True(t, second.Authenticated())
	require.NotNil(t, second.CurrentUser())
	assert.Equal(t, user.ID, second.CurrentUser().ID)
	assert.True(t, second.Can().PlaceOrders)
}

func TestSession_ClearSignsOut(t *testing.T) {
	store := newTestStore(t)
	sess := New(store)
	require.NoError(t, sess.Establish(newCustomer(), "access", ""))

	require.NoError(t, sess.Clear())
	assert.False(t, sess.Authenticated())
	assert.Empty(t, sess.AccessToken())

	restored := New(store)
	require.NoError(t, restored.Init())
	assert.False(t, restored.Authenticated())
}

func TestSession_ExpiresWithin(t *testing.T) {
	sess := New(newTestStore(t))

	// Signed out counts as expired.
	assert.True(t, sess.ExpiresWithin(time.Minute))

	require.NoError(t, sess.Establish(newCustomer(), signedToken(t, time.Hour), ""))
	assert.False(t, sess.ExpiresWithin(time.Minute))
	assert.True(t, sess.ExpiresWithin(2*time.Hour))

	require.NoError(t, sess.Establish(newCustomer(), "not-a-jwt", ""))
	assert.True(t, sess.ExpiresWithin(time.Minute))
}
