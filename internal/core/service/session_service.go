package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/petcare/petcare-client/internal/core/domain"
	"github.com/petcare/petcare-client/internal/core/ports"
	"github.com/petcare/petcare-client/internal/pkg/metrics"
	"github.com/petcare/petcare-client/internal/pkg/validate"
)

// errSuperseded reports that the session was reset while a sign-in was in
// flight.
var errSuperseded = errors.New("session was signed out while the operation was in flight")

const (
	opInitialize     = "initialize"
	opLogin          = "login"
	opLogout         = "logout"
	opRegister       = "register"
	opUpdateProfile  = "update_profile"
	opChangePassword = "change_password"
)

// SessionManager owns the authentication token and the current profile. It is
// the only writer of persisted session storage.
//
// State changes write storage first and memory second while holding mu, so a
// reload never observes a session the running process did not. mu is never
// held across a backend call.
type SessionManager struct {
	api       ports.AuthAPI
	store     ports.SessionStore
	validator *validate.Validator
	adminRole string
	log       zerolog.Logger

	mu    sync.RWMutex
	state domain.Session
	// gen is bumped by every reset. A sign-in that started under an older
	// generation must not publish its session.
	gen uint64

	started atomic.Bool
	busy    atomic.Bool

	subMu  sync.Mutex
	subs   []subscriber
	nextID int
}

type subscriber struct {
	id int
	fn func(domain.Session)
}

// NewSessionManager returns a manager in the initializing state. adminRole
// defaults to domain.RoleAdministrator when empty.
func NewSessionManager(api ports.AuthAPI, store ports.SessionStore, adminRole string, log zerolog.Logger) *SessionManager {
	if adminRole == "" {
		adminRole = domain.RoleAdministrator
	}
	return &SessionManager{
		api:       api,
		store:     store,
		validator: validate.New(),
		adminRole: adminRole,
		log:       log.With().Str("component", "session").Logger(),
		state:     domain.Session{Status: domain.StatusInitializing},
	}
}

// Snapshot returns a copy of the current session.
func (m *SessionManager) Snapshot() domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copySession(m.state)
}

// Token returns the bearer token of an authenticated session, or "".
func (m *SessionManager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state.Status != domain.StatusAuthenticated {
		return ""
	}
	return m.state.Token
}

// HasRole reports whether the signed-in user holds role.
func (m *SessionManager) HasRole(role string) bool {
	return m.Snapshot().HasRole(role)
}

// IsAdmin reports whether the signed-in user holds the administrator role.
func (m *SessionManager) IsAdmin() bool {
	return m.HasRole(m.adminRole)
}

// Subscribe registers fn to receive every session change. The returned func
// removes the subscription.
func (m *SessionManager) Subscribe(fn func(domain.Session)) func() {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	m.nextID++
	id := m.nextID
	m.subs = append(m.subs, subscriber{id: id, fn: fn})
	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		for i, s := range m.subs {
			if s.id == id {
				m.subs = append(m.subs[:i], m.subs[i+1:]...)
				return
			}
		}
	}
}

// Initialize resolves the startup state from persisted storage. Only the
// first call does any work; later calls return the current snapshot.
//
// Any failure of the profile fetch, including an unreachable backend, clears
// the stored session. A Logout that lands while the fetch is in flight wins.
func (m *SessionManager) Initialize(ctx context.Context) (snap domain.Session) {
	if !m.started.CompareAndSwap(false, true) {
		return m.Snapshot()
	}
	defer func() {
		if r := recover(); r != nil {
			m.log.Error().Interface("panic", r).Msg("initialize panicked, clearing session")
			m.reset(ctx)
			metrics.SessionOperationsTotal.WithLabelValues(opInitialize, string(domain.KindNetwork)).Inc()
			snap = m.Snapshot()
		}
	}()

	stored, err := m.store.Load(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("could not read stored session")
		stored = domain.StoredSession{}
	}
	if stored.Token == "" {
		m.reset(ctx)
		metrics.SessionOperationsTotal.WithLabelValues(opInitialize, string(domain.StatusAnonymous)).Inc()
		return m.Snapshot()
	}

	gen := m.setCached(stored.User)

	profile, err := m.api.Profile(ctx, stored.Token)
	if err != nil {
		m.log.Info().Err(err).Msg("stored token rejected or backend unreachable, signing out")
		m.reset(ctx)
		metrics.SessionOperationsTotal.WithLabelValues(opInitialize, string(domain.StatusAnonymous)).Inc()
		return m.Snapshot()
	}
	if err := m.authenticate(ctx, gen, stored.Token, profile); err != nil {
		if errors.Is(err, errSuperseded) {
			m.log.Info().Msg("signed out while the stored session was being checked")
			metrics.SessionOperationsTotal.WithLabelValues(opInitialize, string(domain.StatusAnonymous)).Inc()
			return m.Snapshot()
		}
		m.log.Error().Err(err).Msg("could not persist restored session")
		m.reset(ctx)
		metrics.SessionOperationsTotal.WithLabelValues(opInitialize, string(domain.StatusAnonymous)).Inc()
		return m.Snapshot()
	}

	m.log.Info().Str("username", profile.Username).Msg("session restored")
	metrics.SessionOperationsTotal.WithLabelValues(opInitialize, string(domain.StatusAuthenticated)).Inc()
	return m.Snapshot()
}

// Login signs in with creds. It obtains a token, then fetches the profile with
// that token; the session becomes authenticated only when both succeed. Any
// failure leaves the session anonymous with nothing persisted.
func (m *SessionManager) Login(ctx context.Context, creds domain.Credentials) (user *domain.Profile, err error) {
	defer observe(opLogin, &err)

	creds.Identifier = strings.TrimSpace(creds.Identifier)
	if err := m.validator.Struct(creds); err != nil {
		return nil, err
	}
	if err := m.begin(); err != nil {
		return nil, err
	}
	defer m.end()
	defer m.recoverOp(opLogin, &err, m.reset)
	gen := m.generation()

	// Phase one: the token lives only in this frame until the profile is known.
	token, err := m.api.Login(ctx, creds)
	if err != nil {
		m.reset(ctx)
		return nil, credentialError(err).WithFallback(domain.MsgLoginFailed)
	}
	if token == "" {
		m.reset(ctx)
		return nil, domain.NewAuthenticationError(0, domain.MsgLoginFailed, domain.ErrMissingToken)
	}

	// Phase two.
	profile, err := m.api.Profile(ctx, token)
	if err != nil {
		m.reset(ctx)
		return nil, credentialError(err).WithFallback(domain.MsgLoginFailed)
	}
	if err := m.authenticate(ctx, gen, token, profile); err != nil {
		if errors.Is(err, errSuperseded) {
			return nil, domain.NewPreconditionError(err)
		}
		m.reset(ctx)
		return nil, storageError(err)
	}

	m.log.Info().Str("username", profile.Username).Msg("logged in")
	return profile.Clone(), nil
}

// Logout notifies the backend on a best-effort basis and always clears the
// local session.
func (m *SessionManager) Logout(ctx context.Context) {
	if token := m.Token(); token != "" {
		func() {
			defer func() {
				if r := recover(); r != nil {
					m.log.Warn().Interface("panic", r).Msg("backend logout panicked")
				}
			}()
			if err := m.api.Logout(ctx, token); err != nil {
				m.log.Warn().Err(err).Msg("backend logout failed, clearing local session anyway")
			}
		}()
	}
	m.reset(ctx)
	metrics.SessionOperationsTotal.WithLabelValues(opLogout, "success").Inc()
	m.log.Info().Msg("logged out")
}

// Expire clears the session after the backend rejected the token. No backend
// call is made.
func (m *SessionManager) Expire(ctx context.Context) {
	if m.Snapshot().Status == domain.StatusAnonymous {
		return
	}
	m.reset(ctx)
	metrics.SessionExpirationsTotal.Inc()
	m.log.Info().Msg("session expired")
}

// Register creates an account. When the backend answers with a token the new
// user is signed in the same way Login does; otherwise the session is left
// untouched and the caller must log in separately.
func (m *SessionManager) Register(ctx context.Context, reg domain.Registration) (out *domain.RegisterOutcome, err error) {
	defer observe(opRegister, &err)

	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.TrimSpace(reg.Email)
	if err := m.validator.Struct(reg); err != nil {
		return nil, err
	}
	if err := m.begin(); err != nil {
		return nil, err
	}
	defer m.end()
	defer m.recoverOp(opRegister, &err, nil)
	gen := m.generation()

	resp, err := m.api.Register(ctx, reg)
	if err != nil {
		return nil, domain.AsError(err).WithFallback(domain.MsgRegisterFailed)
	}

	out = &domain.RegisterOutcome{User: resp.User.Clone()}
	if resp.Token == "" {
		return out, nil
	}

	profile, err := m.api.Profile(ctx, resp.Token)
	if err != nil {
		m.log.Warn().Err(err).Str("username", reg.Username).Msg("registered but profile fetch failed, not signing in")
		return out, nil
	}
	if err := m.authenticate(ctx, gen, resp.Token, profile); err != nil {
		m.log.Error().Err(err).Str("username", reg.Username).Msg("registered but session could not be persisted")
		return out, nil
	}

	m.log.Info().Str("username", profile.Username).Msg("registered and logged in")
	out.User = profile.Clone()
	out.SignedIn = true
	return out, nil
}

// UpdateProfile sends the non-nil fields of update to the backend and replaces
// the cached profile with the backend's answer.
func (m *SessionManager) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (user *domain.Profile, err error) {
	defer observe(opUpdateProfile, &err)

	snap := m.Snapshot()
	if !snap.Authenticated() {
		return nil, domain.NewPreconditionError(domain.ErrUnauthenticated)
	}
	if err := m.validator.Struct(update); err != nil {
		return nil, err
	}
	if update.Empty() {
		return snap.User, nil
	}
	if err := m.begin(); err != nil {
		return nil, err
	}
	defer m.end()
	defer m.recoverOp(opUpdateProfile, &err, nil)

	profile, err := m.api.UpdateProfile(ctx, snap.Token, update)
	if err != nil {
		return nil, m.rejected(ctx, err).WithFallback(domain.MsgUpdateFailed)
	}
	if err := m.replaceUser(ctx, snap.Token, profile); err != nil {
		return nil, err
	}

	m.log.Info().Str("username", profile.Username).Msg("profile updated")
	return profile.Clone(), nil
}

// ChangePassword changes the password of the signed-in user. The session keeps
// its token.
func (m *SessionManager) ChangePassword(ctx context.Context, change domain.PasswordChange) (err error) {
	defer observe(opChangePassword, &err)

	snap := m.Snapshot()
	if !snap.Authenticated() {
		return domain.NewPreconditionError(domain.ErrUnauthenticated)
	}
	if err := m.validator.Struct(change); err != nil {
		return err
	}
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()
	defer m.recoverOp(opChangePassword, &err, nil)

	if err := m.api.ChangePassword(ctx, snap.Token, change); err != nil {
		return m.rejected(ctx, err).WithFallback(domain.MsgPasswordFailed)
	}
	m.log.Info().Str("username", snap.User.Username).Msg("password changed")
	return nil
}

// authenticate publishes token and profile unless a reset happened since gen
// was read.
func (m *SessionManager) authenticate(ctx context.Context, gen uint64, token string, profile *domain.Profile) error {
	if profile == nil {
		return errors.New("backend returned an empty profile")
	}
	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		return errSuperseded
	}
	if err := m.store.Save(context.WithoutCancel(ctx), token, profile); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("save session: %w", err)
	}
	m.state = domain.Session{Status: domain.StatusAuthenticated, Token: token, User: profile.Clone()}
	snap := copySession(m.state)
	m.mu.Unlock()

	m.notify(snap)
	return nil
}

// replaceUser swaps the profile of the session that still holds token. A
// session that changed while the request was in flight is left alone.
func (m *SessionManager) replaceUser(ctx context.Context, token string, profile *domain.Profile) error {
	if profile == nil {
		return domain.NewNetworkError(errors.New("backend returned an empty profile"))
	}
	m.mu.Lock()
	if m.state.Status != domain.StatusAuthenticated || m.state.Token != token {
		m.mu.Unlock()
		return domain.NewPreconditionError(domain.ErrUnauthenticated)
	}
	if err := m.store.Save(context.WithoutCancel(ctx), token, profile); err != nil {
		m.mu.Unlock()
		return storageError(err)
	}
	m.state.User = profile.Clone()
	snap := copySession(m.state)
	m.mu.Unlock()

	m.notify(snap)
	return nil
}

func (m *SessionManager) setCached(user *domain.Profile) uint64 {
	m.mu.Lock()
	m.state = domain.Session{Status: domain.StatusInitializing, Cached: user.Clone()}
	gen := m.gen
	snap := copySession(m.state)
	m.mu.Unlock()

	m.notify(snap)
	return gen
}

func (m *SessionManager) generation() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gen
}

// reset clears storage and memory. A storage failure is logged; the in-memory
// session is cleared regardless.
func (m *SessionManager) reset(ctx context.Context) {
	m.mu.Lock()
	if err := m.store.Clear(context.WithoutCancel(ctx)); err != nil {
		m.log.Error().Err(err).Msg("could not clear stored session")
	}
	changed := m.state.Status != domain.StatusAnonymous
	m.gen++
	m.state = domain.Session{Status: domain.StatusAnonymous}
	snap := copySession(m.state)
	m.mu.Unlock()

	if changed {
		m.notify(snap)
	}
}

func (m *SessionManager) notify(snap domain.Session) {
	if snap.Authenticated() {
		metrics.SessionAuthenticated.Set(1)
	} else {
		metrics.SessionAuthenticated.Set(0)
	}

	m.subMu.Lock()
	subs := make([]subscriber, len(m.subs))
	copy(subs, m.subs)
	m.subMu.Unlock()

	for _, s := range subs {
		s.fn(copySession(snap))
	}
}

// begin claims the single mutating-operation slot.
func (m *SessionManager) begin() error {
	if m.Snapshot().Status == domain.StatusInitializing {
		return domain.NewPreconditionError(domain.ErrInitializing)
	}
	if !m.busy.CompareAndSwap(false, true) {
		return domain.NewPreconditionError(domain.ErrOperationInProgress)
	}
	return nil
}

func (m *SessionManager) end() {
	m.busy.Store(false)
}

// recoverOp downgrades a panic raised below the operation to a network error.
// onPanic, when set, runs before the error is returned.
func (m *SessionManager) recoverOp(op string, errp *error, onPanic func(context.Context)) {
	r := recover()
	if r == nil {
		return
	}
	m.log.Error().Interface("panic", r).Str("operation", op).Msg("session operation panicked")
	if onPanic != nil {
		onPanic(context.Background())
	}
	*errp = domain.NewNetworkError(fmt.Errorf("%s: %v", op, r))
}

// rejected expires the session when the backend answered 401 and returns err
// as a *domain.Error. An expiry wraps domain.ErrSessionExpired so callers
// redirect to login instead of showing the message.
func (m *SessionManager) rejected(ctx context.Context, err error) *domain.Error {
	de := domain.AsError(err)
	if de.Status != http.StatusUnauthorized {
		return de
	}
	m.Expire(ctx)
	if errors.Is(de, domain.ErrSessionExpired) {
		return de
	}
	c := *de
	if c.Err == nil {
		c.Err = domain.ErrSessionExpired
	} else {
		c.Err = fmt.Errorf("%w: %w", domain.ErrSessionExpired, de.Err)
	}
	return &c
}

func observe(op string, errp *error) {
	result := "success"
	if *errp != nil {
		result = string(domain.AsError(*errp).Kind)
	}
	metrics.SessionOperationsTotal.WithLabelValues(op, result).Inc()
}

// credentialError classifies a login-time rejection. The backend reports bad
// credentials as a 400 with only non-field errors, or as a 401.
func credentialError(err error) *domain.Error {
	de := domain.AsError(err)
	rejected := de.Status == http.StatusUnauthorized ||
		(de.Kind == domain.KindValidation && !hasFieldErrors(de.Fields))
	if !rejected {
		return de
	}
	c := *de
	c.Kind = domain.KindAuthentication
	if c.Err == nil {
		c.Err = domain.ErrInvalidCredentials
	} else {
		c.Err = fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, de.Err)
	}
	return &c
}

func hasFieldErrors(fields map[string][]string) bool {
	for k := range fields {
		if k != domain.NonFieldKey {
			return true
		}
	}
	return false
}

func storageError(err error) *domain.Error {
	return &domain.Error{Kind: domain.KindNetwork, Message: "the session could not be saved", Err: err}
}

func copySession(s domain.Session) domain.Session {
	s.User = s.User.Clone()
	s.Cached = s.Cached.Clone()
	return s
}
