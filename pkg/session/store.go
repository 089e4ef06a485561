package session

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/oauth2"

	"github.com/mwapio/console/pkg/observability"
)

// Store owns the session: it is the only writer, every other component
// reads snapshots through Current and bearer tokens through Token.
type Store struct {
	provider *Provider
	creds    *FileStore
	logger   *observability.Logger
	metrics  *observability.Metrics

	callbackAddr string
	loginTimeout time.Duration

	// onAuthURL receives the authorization URL the user must visit.
	onAuthURL func(string)

	mu          sync.Mutex
	session     Session
	accessToken string
	tokenSource oauth2.TokenSource
	onChange    []func(Session)
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithLogger sets the structured logger
func WithLogger(logger *observability.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

// WithMetrics sets the metrics sink
func WithMetrics(m *observability.Metrics) StoreOption {
	return func(s *Store) { s.metrics = m }
}

// WithCallbackAddr sets the loopback address for the login redirect
func WithCallbackAddr(addr string) StoreOption {
	return func(s *Store) { s.callbackAddr = addr }
}

// WithLoginTimeout bounds how long Login waits for the redirect
func WithLoginTimeout(d time.Duration) StoreOption {
	return func(s *Store) { s.loginTimeout = d }
}

// WithAuthURLHandler sets the sink for the authorization URL, typically
// a printer in the CLI. Defaults to logging the URL.
func WithAuthURLHandler(fn func(string)) StoreOption {
	return func(s *Store) { s.onAuthURL = fn }
}

// NewStore creates a session store, restoring any persisted credential.
// provider may be nil in tests; Login then fails but persisted tokens
// still work.
func NewStore(provider *Provider, creds *FileStore, opts ...StoreOption) (*Store, error) {
	s := &Store{
		provider:     provider,
		creds:        creds,
		logger:       observability.NewLogger(observability.InfoLevel, nil),
		callbackAddr: "127.0.0.1:8765",
		loginTimeout: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}

	cred, err := creds.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	if cred != nil {
		s.restore(cred)
	}
	return s, nil
}

// restore applies a persisted credential to the in-memory session
func (s *Store) restore(cred *Credential) {
	profile := cred.Profile
	s.session = Session{Authenticated: true, Profile: &profile}
	s.accessToken = cred.AccessToken
	if s.provider != nil {
		s.tokenSource = s.provider.TokenSource(context.Background(), &oauth2.Token{
			AccessToken:  cred.AccessToken,
			RefreshToken: cred.RefreshToken,
			TokenType:    cred.TokenType,
			Expiry:       cred.Expiry,
		})
	}
}

// OnChange registers a subscriber invoked synchronously, in
// registration order, after every session transition. Logout's
// subscribers run before Logout returns, so dependents can discard
// state with no race window against a following login.
func (s *Store) OnChange(fn func(Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Current returns a snapshot of the session
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Token returns the current bearer token, refreshing it transparently
// when expired. On failure it logs and returns "", never an error, so
// dependent UI degrades to a 401 instead of crashing.
func (s *Store) Token(ctx context.Context) string {
	s.mu.Lock()
	if !s.session.Authenticated {
		s.mu.Unlock()
		return ""
	}
	ts := s.tokenSource
	cached := s.accessToken
	s.mu.Unlock()

	if ts == nil {
		return cached
	}

	tok, err := ts.Token()
	if err != nil {
		s.metrics.RecordTokenRefresh("error")
		s.logger.WithError(err).Warn("token refresh failed")
		return ""
	}

	if tok.AccessToken != cached {
		s.metrics.RecordTokenRefresh("success")
		s.persistRefreshed(tok)
	}
	return tok.AccessToken
}

// persistRefreshed stores a refreshed token in place, keeping the
// session entity itself unchanged.
func (s *Store) persistRefreshed(tok *oauth2.Token) {
	s.mu.Lock()
	s.accessToken = tok.AccessToken
	profile := s.session.Profile
	s.mu.Unlock()

	if profile == nil {
		return
	}
	cred := &Credential{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
		Profile:      *profile,
	}
	if err := s.creds.Save(cred); err != nil {
		s.logger.WithError(err).Warn("failed to persist refreshed token")
	}
}

// Login runs the authorization-code flow: it starts a loopback callback
// listener, hands the authorization URL to the configured handler, and
// waits for the redirect.
func (s *Store) Login(ctx context.Context) error {
	if s.provider == nil {
		return fmt.Errorf("no identity provider configured")
	}

	state := uuid.NewString()
	codeCh := make(chan string, 1)

	router := mux.NewRouter()
	router.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing authorization code", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body>Signed in. You can close this window.</body></html>")
		select {
		case codeCh <- code:
		default:
		}
	}).Methods(http.MethodGet)

	listener, err := net.Listen("tcp", s.callbackAddr)
	if err != nil {
		return fmt.Errorf("failed to start callback listener: %w", err)
	}
	server := &http.Server{Handler: router}
	go server.Serve(listener)
	defer server.Close()

	authURL := s.provider.AuthCodeURL(state)
	if s.onAuthURL != nil {
		s.onAuthURL(authURL)
	} else {
		s.logger.Infof("Open the following URL to sign in: %s", authURL)
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.loginTimeout)
	defer cancel()

	var code string
	select {
	case <-waitCtx.Done():
		s.metrics.RecordLogin("timeout")
		return fmt.Errorf("login timed out waiting for redirect: %w", waitCtx.Err())
	case code = <-codeCh:
	}

	tok, err := s.provider.Exchange(ctx, code)
	if err != nil {
		s.metrics.RecordLogin("error")
		return err
	}
	profile, err := s.provider.ProfileFromToken(ctx, tok)
	if err != nil {
		s.metrics.RecordLogin("error")
		return err
	}

	cred := &Credential{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
		Profile:      *profile,
	}
	if err := s.creds.Save(cred); err != nil {
		s.metrics.RecordLogin("error")
		return err
	}

	s.mu.Lock()
	s.restore(cred)
	session := s.session
	subscribers := append([]func(Session){}, s.onChange...)
	s.mu.Unlock()

	s.metrics.RecordLogin("success")
	s.logger.WithField("user_id", profile.SubjectID).Info("signed in")
	s.notify(subscribers, session)
	return nil
}

// Logout clears the persisted credential and the in-memory session.
// Subscribers are notified before Logout returns.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.creds.Clear(); err != nil {
		return err
	}

	s.mu.Lock()
	s.session = Session{}
	s.accessToken = ""
	s.tokenSource = nil
	session := s.session
	subscribers := append([]func(Session){}, s.onChange...)
	s.mu.Unlock()

	s.logger.Info("signed out")
	s.notify(subscribers, session)
	return nil
}

// WatchCredentials reloads the session when another process logs in or
// out, the cross-process analog of storage events.
func (s *Store) WatchCredentials(ctx context.Context) error {
	return s.creds.Watch(ctx, s.logger, func() {
		cred, err := s.creds.Load()
		if err != nil {
			s.logger.WithError(err).Warn("failed to reload credentials")
			return
		}

		s.mu.Lock()
		if cred == nil {
			s.session = Session{}
			s.accessToken = ""
			s.tokenSource = nil
		} else {
			s.restore(cred)
		}
		session := s.session
		subscribers := append([]func(Session){}, s.onChange...)
		s.mu.Unlock()

		s.notify(subscribers, session)
	})
}

func (s *Store) notify(subscribers []func(Session), session Session) {
	for _, fn := range subscribers {
		fn(session)
	}
}
