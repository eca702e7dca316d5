package session

import (
	"sync"
	"time"

	"nearbasket/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Capabilities is the fixed set of actions the signed-in role may perform,
// resolved once when the session is established instead of re-checking the
// role string on every screen.
type Capabilities struct {
	PlaceOrders      bool // browse shops, build a cart, place orders
	JoinShops        bool // join shops by code or QR
	ManageShop       bool // edit the owned shop, its products and its roster
	TransitionOrders bool // accept/reject/deliver received orders
}

func capabilitiesFor(role entity.Role) Capabilities {
	switch role {
	case entity.RoleCustomer:
		return Capabilities{PlaceOrders: true, JoinShops: true}
	case entity.RoleShopkeeper:
		return Capabilities{ManageShop: true, TransitionOrders: true}
	default:
		return Capabilities{}
	}
}

// Store abstracts the durable cache behind the session.
type Store interface {
	Load() (*State, error)
	Save(state *State) error
	Clear() error
}

// Session is the process-wide identity holder. It is safe for concurrent
// reads from network callbacks; mutation happens through Establish and Clear.
type Session struct {
	mu    sync.RWMutex
	store Store
	state State
	caps  Capabilities
}

// New creates an empty, signed-out session backed by store.
func New(store Store) *Session {
	return &Session{store: store}
}

// Init restores the persisted identity, if any. Called once at startup.
func (s *Session) Init() error {
	state, err := s.store.Load()
	if err != nil {
		return errors.Wrap(err, "load session state")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = *state
	if state.User != nil {
		s.caps = capabilitiesFor(state.User.Role)
	}

	return nil
}

// Establish records a successful login: the issued tokens and the user they
// belong to. Capabilities are resolved here, once, from the immutable role.
func (s *Session) Establish(user *entity.User, accessToken, refreshToken string) error {
	if user == nil {
		return errors.New("user is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{AccessToken: accessToken, RefreshToken: refreshToken, User: user}
	s.caps = capabilitiesFor(user.Role)

	return errors.Wrap(s.store.Save(&s.state), "persist session")
}

// UpdateUser replaces the cached user record after a profile edit.
func (s *Session) UpdateUser(user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User == nil {
		return errors.New("no active session")
	}

	s.state.User = user

	return errors.Wrap(s.store.Save(&s.state), "persist session")
}

// Clear signs out: wipes the in-memory identity and the durable cache.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
	s.caps = Capabilities{}

	return errors.Wrap(s.store.Clear(), "clear session store")
}

// Authenticated reports whether a user is signed in.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.User != nil && s.state.AccessToken != ""
}

// CurrentUser returns the signed-in user, or nil.
func (s *Session) CurrentUser() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.User
}

// Can returns the capability set of the current session.
func (s *Session) Can() Capabilities {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.caps
}

// AccessToken returns the current bearer token, or "". Implements the gateway
// client's TokenProvider.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.AccessToken
}

// ExpiresWithin reports whether the access token expires within d. The claim
// is read without signature verification: only the gateway verifies tokens,
// the client just peeks at the expiry to prompt a re-login early. An absent
// or unreadable token counts as expired.
func (s *Session) ExpiresWithin(d time.Duration) bool {
	s.mu.RLock()
	token := s.state.AccessToken
	s.mu.RUnlock()

	if token == "" {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}

	return time.Until(exp.Time) <= d
}
