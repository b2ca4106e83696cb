package authsdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// errSessionReplaced is returned to a refresh whose result was discarded
// because the user logged in or out while it was in flight.
var errSessionReplaced = errors.New("session replaced during refresh")

// Session holds the signed-in user and both tokens, mirrors them to
// Storage at login, refresh and logout, and replays a request once when the
// server reports an expired access token.
//
// A Session is either anonymous or authenticated. It is safe for concurrent
// use; concurrent refreshes share one request.
type Session struct {
	client  *SDKClient
	storage Storage

	refreshGroup singleflight.Group

	mu           sync.RWMutex
	epoch        uint64 // bumped on login and logout
	accessToken  string
	refreshToken string
	user         *Claims
}

// NewSession rehydrates any state left in storage. It does not contact the
// server; a stale token is only discovered on the next call.
func NewSession(client *SDKClient, storage Storage) (*Session, error) {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	s := &Session{client: client, storage: storage}

	var err error
	if s.accessToken, _, err = storage.Load(KeyAccessToken); err != nil {
		return nil, fmt.Errorf("loading access token: %w", err)
	}
	if s.refreshToken, _, err = storage.Load(KeyRefreshToken); err != nil {
		return nil, fmt.Errorf("loading refresh token: %w", err)
	}

	raw, ok, err := storage.Load(KeyCurrentUser)
	if err != nil {
		return nil, fmt.Errorf("loading current user: %w", err)
	}
	if ok {
		var u Claims
		if err := json.Unmarshal([]byte(raw), &u); err == nil && u.ID != "" {
			s.user = &u
		}
	}
	return s, nil
}

// IsAuthenticated reports whether a user is signed in.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// CurrentUser returns the signed-in user's claims.
func (s *Session) CurrentUser() (Claims, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return Claims{}, false
	}
	return *s.user, true
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Login signs in and stores both tokens and the user. On failure the
// session is left as it was and the server's message is returned as an
// *APIError.
func (s *Session) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	user, err := json.Marshal(resp.Session)
	if err != nil {
		return nil, fmt.Errorf("encoding current user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	s.accessToken = resp.Token
	s.refreshToken = resp.RefreshToken
	claims := resp.Session
	s.user = &claims

	if err := s.persist(map[string]string{
		KeyAccessToken:  resp.Token,
		KeyRefreshToken: resp.RefreshToken,
		KeyCurrentUser:  string(user),
	}); err != nil {
		return nil, err
	}
	return resp, nil
}

// Logout forgets the user and both tokens. Calling it when already signed
// out is a no-op.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	s.accessToken = ""
	s.refreshToken = ""
	s.user = nil

	if err := s.storage.Delete(KeyAccessToken, KeyRefreshToken, KeyCurrentUser); err != nil {
		return fmt.Errorf("clearing session storage: %w", err)
	}
	return nil
}

// refreshTimeout bounds a shared refresh, which outlives any one caller's
// context.
const refreshTimeout = 30 * time.Second

// RefreshSession trades the refresh token for a new access token.
// Concurrent callers within one login share a single request; each caller
// stops waiting when its own ctx is done. A failed refresh does not sign
// the user out; that is left to the caller.
func (s *Session) RefreshSession(ctx context.Context) error {
	s.mu.RLock()
	epoch := s.epoch
	s.mu.RUnlock()

	shared := context.WithoutCancel(ctx)
	ch := s.refreshGroup.DoChan(fmt.Sprint("refresh:", epoch), func() (any, error) {
		ctx, cancel := context.WithTimeout(shared, refreshTimeout)
		defer cancel()
		return nil, s.refresh(ctx, epoch)
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) refresh(ctx context.Context, epoch uint64) error {
	s.mu.RLock()
	if s.epoch != epoch {
		s.mu.RUnlock()
		return errSessionReplaced
	}
	token := s.refreshToken
	s.mu.RUnlock()

	if token == "" {
		stored, ok, err := s.storage.Load(KeyRefreshToken)
		if err != nil {
			return fmt.Errorf("loading refresh token: %w", err)
		}
		if !ok || stored == "" {
			return ErrRefreshTokenNotFound
		}
		token = stored
	}

	resp, err := s.client.Refresh(ctx, token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch {
		return errSessionReplaced
	}

	s.accessToken = resp.Token
	values := map[string]string{KeyAccessToken: resp.Token}
	if resp.RefreshToken != "" {
		s.refreshToken = resp.RefreshToken
		values[KeyRefreshToken] = resp.RefreshToken
	} else {
		s.refreshToken = token
	}
	return s.persist(values)
}

// persist writes values to storage. Callers hold s.mu.
func (s *Session) persist(values map[string]string) error {
	for k, v := range values {
		if err := s.storage.Save(k, v); err != nil {
			return fmt.Errorf("saving %s: %w", k, err)
		}
	}
	return nil
}

// Do sends an authenticated request and decodes the response data into out
// (may be nil). If the server answers with an expired token, Do refreshes
// the session and replays the request once. A second expiry, or a failed
// refresh, is returned as ErrUnableToRefresh.
func (s *Session) Do(ctx context.Context, method, path string, in, out any) error {
	body, err := marshalBody(in)
	if err != nil {
		return err
	}

	for attempt := 0; ; attempt++ {
		sent := s.AccessToken()
		err := s.client.call(ctx, method, path, body, accessCredential(sent), out)

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.Expired() {
			return err
		}
		if attempt > 0 {
			return fmt.Errorf("%w: %w", ErrUnableToRefresh, err)
		}
		// Another caller already refreshed while this request was out.
		if s.AccessToken() != sent {
			continue
		}
		if err := s.RefreshSession(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrUnableToRefresh, err)
		}
	}
}
