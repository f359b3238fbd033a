package share

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Credentials identify the publisher account.
type Credentials struct {
	Username string
	Password string
}

func (c Credentials) validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return accountError(ReasonUsernameEmpty)
	}
	if c.Password == "" {
		return accountError(ReasonPasswordEmpty)
	}
	return nil
}

// Session is the provider-issued identifier pair. The zero value is an
// unauthenticated session.
type Session struct {
	AccountID string
	SessionID string
}

// Valid reports whether both identifiers are present and neither is the
// all-zero sentinel.
func (s Session) Valid() bool {
	return checkID(s.AccountID, ReasonAccountIDNull, ReasonAccountIDDefault) == nil &&
		ValidateSession(s) == nil
}

// ValidateSession returns SessionError(session-id-null) or
// SessionError(session-id-default) when s cannot be used for a request.
func ValidateSession(s Session) error {
	if err := checkID(s.SessionID, ReasonSessionIDNull, ReasonSessionIDDefault); err != nil {
		return err
	}
	return nil
}

func checkID(id string, missing, sentinel Reason) *Error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return sessionError(missing)
	}
	if parsed, err := uuid.Parse(trimmed); err == nil && parsed == uuid.Nil {
		return sessionError(sentinel)
	}
	return nil
}

type poster interface {
	post(ctx context.Context, endpoint string, payload, dest any) error
}

type authenticateRequest struct {
	AccountName   string `json:"accountName"`
	Password      string `json:"password"`
	ApplicationID string `json:"applicationId"`
}

type loginRequest struct {
	AccountID     string `json:"accountId"`
	Password      string `json:"password"`
	ApplicationID string `json:"applicationId"`
}

// SessionManager owns the cached session and the two-step login handshake.
// The session is replaced wholesale on acquisition and reset on invalidation;
// nothing else mutates it.
type SessionManager struct {
	transport poster
	creds     Credentials
	limiter   *rate.Limiter
	log       *slog.Logger
	obs       Observer

	mu      sync.Mutex
	session Session
}

func newSessionManager(t poster, creds Credentials, limiter *rate.Limiter, logger *slog.Logger, obs Observer) *SessionManager {
	return &SessionManager{
		transport: t,
		creds:     creds,
		limiter:   limiter,
		log:       logger,
		obs:       obs,
	}
}

// Current returns a copy of the cached session.
func (m *SessionManager) Current() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Invalidate discards the cached session.
func (m *SessionManager) Invalidate() {
	m.mu.Lock()
	m.session = Session{}
	m.mu.Unlock()
}

// Ensure returns the cached session when it validates, acquiring a new one
// otherwise. Acquisition errors are returned unchanged.
func (m *SessionManager) Ensure(ctx context.Context) (Session, error) {
	if current := m.Current(); ValidateSession(current) == nil {
		return current, nil
	}
	return m.Acquire(ctx)
}

// Acquire performs the authenticate-then-login handshake and caches the
// resulting session. It either yields a fully valid session or fails with an
// account or provider error; the cached session is untouched on failure.
func (m *SessionManager) Acquire(ctx context.Context) (Session, error) {
	if err := m.creds.validate(); err != nil {
		m.obs.ObserveAcquire(err)
		return Session{}, err
	}
	if m.limiter != nil {
		if err := m.limiter.Wait(ctx); err != nil {
			err = throttledError(fmt.Errorf("wait for login slot: %w", err))
			m.obs.ObserveAcquire(err)
			return Session{}, err
		}
	}

	session, err := m.handshake(ctx)
	if err != nil {
		// Deliberate narrowing: a session-level defect during login surfaces
		// as AccountError(unknown), so acquisition callers only ever see
		// account-level failures. The cause is kept in Message, not Err, so
		// errors.Is(err, ErrSession) stays false.
		var se *Error
		if errors.As(err, &se) && se.Kind == ErrSession {
			err = &Error{Kind: ErrAccount, Reason: ReasonAccountUnknown, Message: string(se.Reason)}
		}
		m.log.Warn("session acquisition failed", slog.String("error", err.Error()))
		m.obs.ObserveAcquire(err)
		return Session{}, err
	}

	m.mu.Lock()
	m.session = session
	m.mu.Unlock()

	m.log.Info("session acquired")
	m.obs.ObserveAcquire(nil)
	return session, nil
}

func (m *SessionManager) handshake(ctx context.Context) (Session, error) {
	var accountID string
	err := m.transport.post(ctx, endpointAuthenticate, authenticateRequest{
		AccountName:   m.creds.Username,
		Password:      m.creds.Password,
		ApplicationID: ApplicationID,
	}, &accountID)
	if err != nil {
		return Session{}, err
	}
	if err := checkID(accountID, ReasonAccountIDNull, ReasonAccountIDDefault); err != nil {
		return Session{}, err
	}

	var sessionID string
	err = m.transport.post(ctx, endpointLogin, loginRequest{
		AccountID:     accountID,
		Password:      m.creds.Password,
		ApplicationID: ApplicationID,
	}, &sessionID)
	if err != nil {
		return Session{}, err
	}
	session := Session{AccountID: accountID, SessionID: sessionID}
	if err := ValidateSession(session); err != nil {
		return Session{}, err
	}
	return session, nil
}
