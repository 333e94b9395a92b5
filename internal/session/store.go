// Package session owns the authentication lifecycle for the kabu client.
//
// The Store is the single authoritative holder of session state. Every
// mutation is a whole-object replace under the store mutex, so observers
// only ever see the session at committed points: start-of-loading and
// end-of-action, never mid-update.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/bobmcallan/kabu/internal/common"
	"github.com/bobmcallan/kabu/internal/interfaces"
	"github.com/bobmcallan/kabu/internal/models"
	"github.com/bobmcallan/kabu/internal/storage"
)

// ErrSuperseded is returned when an in-flight login or register resolved
// after another action (typically a logout) committed first. The result of
// the superseded action is discarded rather than overwriting newer state.
var ErrSuperseded = errors.New("session action superseded by a later action")

// Subscriber receives a session snapshot after every committed change.
type Subscriber func(models.Session)

// Store is an explicitly constructed session container. It is created by the
// application root and injected into views; views read snapshots and invoke
// actions but never mutate session state directly.
type Store struct {
	mu      sync.Mutex
	state   models.Session
	gen     uint64
	api     interfaces.AuthAPI
	persist interfaces.SessionStorage
	logger  *common.Logger
	subs    map[int]Subscriber
	nextSub int
}

// NewStore creates a session store, rehydrating persisted state if present.
// A missing, corrupt, or inconsistent record yields an empty session.
// IsLoading is never persisted and always starts false.
func NewStore(api interfaces.AuthAPI, persist interfaces.SessionStorage, logger *common.Logger) *Store {
	s := &Store{
		api:     api,
		persist: persist,
		logger:  logger,
		subs:    make(map[int]Subscriber),
	}

	record, err := persist.Load()
	switch {
	case err == nil:
		restored := models.Session{
			User:            record.User,
			Tokens:          record.Tokens,
			IsAuthenticated: record.IsAuthenticated,
		}
		if restored.Consistent() {
			s.state = restored
			logger.Debug().Bool("authenticated", restored.IsAuthenticated).Msg("Session rehydrated")
		} else {
			logger.Warn().Msg("Persisted session inconsistent, starting empty")
		}
	case errors.Is(err, storage.ErrNotFound):
		// First run, nothing to restore.
	default:
		logger.Warn().Err(err).Msg("Failed to load persisted session, starting empty")
	}

	return s
}

// snapshot returns a deep copy of the current state. Caller must hold the lock.
func (s *Store) snapshot() models.Session {
	out := s.state
	if s.state.User != nil {
		user := *s.state.User
		out.User = &user
	}
	if s.state.Tokens != nil {
		tokens := *s.state.Tokens
		out.Tokens = &tokens
	}
	return out
}

// commit replaces the whole session state, bumps the generation, optionally
// persists the durable fields, and returns the snapshot plus subscribers to
// notify. Caller must hold the lock.
func (s *Store) commit(next models.Session, durable bool) (models.Session, []Subscriber) {
	s.state = next
	s.gen++

	if durable {
		record := &models.PersistedSession{
			Tokens:          s.state.Tokens,
			User:            s.state.User,
			IsAuthenticated: s.state.IsAuthenticated,
		}
		if err := s.persist.Save(record); err != nil {
			s.logger.Error().Err(err).Msg("Failed to persist session")
		}
	}

	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return s.snapshot(), subs
}

func notify(snap models.Session, subs []Subscriber) {
	for _, fn := range subs {
		fn(snap)
	}
}

// Current returns a snapshot of the session.
func (s *Store) Current() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// AccessToken returns the stored bearer credential, or "" when logged out.
// Wired into the API client as its token source.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Tokens == nil {
		return ""
	}
	return s.state.Tokens.AccessToken
}

// Subscribe registers a change listener and returns an unsubscribe func.
// The listener is invoked with a snapshot after every committed change.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// beginLoading commits isLoading=true and returns the generation of that
// commit. The loading flag is transient and not persisted.
func (s *Store) beginLoading() uint64 {
	s.mu.Lock()
	next := s.snapshot()
	next.IsLoading = true
	snap, subs := s.commit(next, false)
	gen := s.gen
	s.mu.Unlock()
	notify(snap, subs)
	return gen
}

// failLoading resets isLoading after a failed action, leaving every other
// field untouched. If a later action already committed, the session is left
// exactly as that action set it.
func (s *Store) failLoading(gen uint64) {
	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return
	}
	next := s.snapshot()
	next.IsLoading = false
	snap, subs := s.commit(next, false)
	s.mu.Unlock()
	notify(snap, subs)
}

// Login requests a token bundle, then the profile for that bundle, and
// commits {tokens, user, authenticated} in one visible update. On any
// failure the prior session is left untouched apart from the transient
// loading flag, and the error propagates to the caller.
//
// The profile request is strictly sequenced after a successful token
// request; a token failure means no profile request is made.
func (s *Store) Login(ctx context.Context, creds models.LoginCredentials) error {
	gen := s.beginLoading()

	tokens, err := s.api.Login(ctx, creds)
	if err != nil {
		s.failLoading(gen)
		return err
	}

	user, err := s.api.Profile(ctx, tokens.AccessToken)
	if err != nil {
		s.failLoading(gen)
		return err
	}

	s.mu.Lock()
	if s.gen != gen {
		// Another action (e.g. logout) committed while this login was in
		// flight. Its outcome wins; discard ours.
		s.mu.Unlock()
		s.logger.Warn().Str("email", creds.Email).Msg("Login superseded, result discarded")
		return ErrSuperseded
	}
	snap, subs := s.commit(models.Session{
		User:            user,
		Tokens:          tokens,
		IsAuthenticated: true,
	}, true)
	s.mu.Unlock()
	notify(snap, subs)

	s.logger.Info().Str("email", user.Email).Msg("Logged in")
	return nil
}

// Register creates an account, then logs in with the same credentials.
// Failure in either stage propagates and leaves the session as it was
// before the call, apart from the transient loading flag.
func (s *Store) Register(ctx context.Context, creds models.RegisterCredentials) error {
	gen := s.beginLoading()

	if _, err := s.api.Register(ctx, creds); err != nil {
		s.failLoading(gen)
		return err
	}

	// Auto-login after registration.
	return s.Login(ctx, models.LoginCredentials{
		Email:    creds.Email,
		Password: creds.Password,
	})
}

// Logout unconditionally clears the session. It is synchronous, idempotent,
// and never fails; persistence errors are logged only.
func (s *Store) Logout() {
	s.mu.Lock()
	snap, subs := s.commit(models.Session{}, true)
	s.mu.Unlock()
	notify(snap, subs)

	s.logger.Info().Msg("Logged out")
}

// FetchProfile refreshes the user record from the backend, leaving tokens
// untouched. This is an opportunistic refresh: failures are logged and
// swallowed, and a logout that raced the request wins.
func (s *Store) FetchProfile(ctx context.Context) {
	s.mu.Lock()
	if s.state.Tokens == nil {
		s.mu.Unlock()
		return
	}
	token := s.state.Tokens.AccessToken
	gen := s.gen
	s.mu.Unlock()

	user, err := s.api.Profile(ctx, token)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to fetch profile")
		return
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return
	}
	next := s.snapshot()
	next.User = user
	snap, subs := s.commit(next, true)
	s.mu.Unlock()
	notify(snap, subs)
}
