package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/domain"
	"github.com/aussiebroadwan/intake/internal/intake/store"
	"github.com/aussiebroadwan/intake/internal/intake/validation"
	"github.com/aussiebroadwan/intake/pkg/cryptox"
	"github.com/aussiebroadwan/intake/pkg/idx"
	"github.com/aussiebroadwan/intake/pkg/jwtx"
	"github.com/aussiebroadwan/intake/pkg/slogx"
)

const (
	MinPasswordLength      = 6
	DefaultConfirmationTTL = 24 * time.Hour

	// ConfirmPath is where confirmation links point.
	ConfirmPath = "/api/auth/confirm"
)

var (
	ErrInvalidEmail       = errors.New("service: invalid email")
	ErrPasswordMismatch   = errors.New("service: passwords do not match")
	ErrPasswordTooShort   = errors.New("service: password too short")
	ErrEmailTaken         = errors.New("service: email already registered")
	ErrInvalidCredentials = errors.New("service: invalid credentials")
	ErrNotConfirmed       = errors.New("service: email not confirmed")
	ErrAlreadyConfirmed   = errors.New("service: email already confirmed")
	ErrInvalidToken       = errors.New("service: invalid or expired confirmation token")
	ErrInvalidSession     = errors.New("service: invalid or expired session")
)

var authMessages = map[error]string{
	ErrInvalidEmail:       "Please enter a valid email address",
	ErrPasswordMismatch:   "Passwords do not match",
	ErrPasswordTooShort:   fmt.Sprintf("Password must be at least %d characters", MinPasswordLength),
	ErrEmailTaken:         "An account with this email already exists",
	ErrInvalidCredentials: "Invalid email or password",
	ErrNotConfirmed:       "Email not confirmed",
	ErrAlreadyConfirmed:   "Email already confirmed",
	ErrInvalidToken:       "Confirmation link is invalid or has expired",
	ErrInvalidSession:     "Session is invalid or has expired",
}

// AuthMessage returns the operator-facing message for an auth error, or a
// generic one for anything unexpected.
func AuthMessage(err error) string {
	for sentinel, msg := range authMessages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return "An unexpected error occurred"
}

// Session is an authenticated operator session carried in a signed token.
type Session struct {
	ID         string // token id; keys the per-session intake workflow
	OperatorID string
	Email      string
	Token      string
	ExpiresAt  time.Time
}

// AuthService manages operator accounts and sessions.
type AuthService struct {
	Store    store.Store
	Hasher   *cryptox.Hasher
	Signer   *jwtx.Signer
	Verifier *jwtx.Verifier
	Mailer   ConfirmationMailer

	Issuer          string
	BaseURL         string
	SessionTTL      time.Duration
	ConfirmationTTL time.Duration

	// Now defaults to time.Now.
	Now func() time.Time

	// OnSignup, when set, is called after each created account.
	OnSignup func()

	revokedMu sync.Mutex
	revoked   map[string]time.Time // session id -> token expiry
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp creates an unconfirmed operator and emails a confirmation link.
// A failed email is logged; the operator can ask for it again.
func (s *AuthService) SignUp(ctx context.Context, email, password, confirm string) error {
	email = normalizeEmail(email)
	if _, ok := validation.Email(email); !ok {
		return ErrInvalidEmail
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len([]rune(password)) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	op := domain.Operator{
		ID:           idx.NewAt(now).String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var token string
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Operators().CreateOperator(ctx, op); err != nil {
			return err
		}
		var txErr error
		token, txErr = s.issueConfirmation(ctx, tx, op.ID)
		return txErr
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("create operator: %w", err)
	}

	slogx.FromContext(ctx).Info("operator signed up", "operator_id", op.ID)
	if s.OnSignup != nil {
		s.OnSignup()
	}

	s.mailConfirmation(ctx, email, token)
	return nil
}

// ResendConfirmation replaces the operator's pending confirmation with a new
// one and emails it. Unknown addresses succeed silently.
func (s *AuthService) ResendConfirmation(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	op, err := s.Store.Operators().GetOperatorByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		slogx.FromContext(ctx).Info("confirmation resend for unknown email")
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup operator: %w", err)
	}
	if op.Confirmed() {
		return ErrAlreadyConfirmed
	}

	var token string
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Confirmations().DeleteConfirmationsForOperator(ctx, op.ID); err != nil {
			return err
		}
		var txErr error
		token, txErr = s.issueConfirmation(ctx, tx, op.ID)
		return txErr
	})
	if err != nil {
		return fmt.Errorf("rotate confirmation: %w", err)
	}

	s.mailConfirmation(ctx, email, token)
	return nil
}

// Confirm consumes a confirmation token and marks its operator confirmed.
func (s *AuthService) Confirm(ctx context.Context, token string) (domain.Operator, error) {
	if token == "" {
		return domain.Operator{}, ErrInvalidToken
	}
	now := s.now()

	var op domain.Operator
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Confirmations().GetConfirmationByTokenHash(ctx, cryptox.FingerprintToken(token))
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidToken
		}
		if err != nil {
			return err
		}
		if c.Expired(now) {
			return ErrInvalidToken
		}

		if err := tx.Operators().MarkOperatorConfirmed(ctx, c.OperatorID, now); err != nil {
			return err
		}
		if err := tx.Confirmations().DeleteConfirmationsForOperator(ctx, c.OperatorID); err != nil {
			return err
		}
		op, err = tx.Operators().GetOperatorByID(ctx, c.OperatorID)
		return err
	})
	if err != nil {
		return domain.Operator{}, err
	}

	slogx.FromContext(ctx).Info("operator confirmed", "operator_id", op.ID)
	return op, nil
}

// SignIn checks credentials and issues a session token. Unconfirmed
// operators cannot sign in.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (Session, error) {
	op, err := s.Store.Operators().GetOperatorByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("lookup operator: %w", err)
	}

	if err := s.Hasher.Verify(password, op.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			slogx.FromContext(ctx).Error("stored password hash unreadable", "operator_id", op.ID, "error", err)
		}
		return Session{}, ErrInvalidCredentials
	}
	if !op.Confirmed() {
		return Session{}, ErrNotConfirmed
	}

	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	claims := jwtx.NewSessionClaims(op.ID, op.Email, s.Issuer, ttl, s.now())

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return Session{}, fmt.Errorf("sign session: %w", err)
	}

	slogx.FromContext(ctx).Info("operator signed in", "operator_id", op.ID)
	return Session{
		ID:         claims.ID,
		OperatorID: op.ID,
		Email:      op.Email,
		Token:      token,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}

// Authenticate resolves a session token. Tokens of signed-out sessions are
// rejected until they expire.
func (s *AuthService) Authenticate(token string) (Session, error) {
	if token == "" {
		return Session{}, ErrInvalidSession
	}
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if _, err := idx.Parse(claims.ID); err != nil {
		return Session{}, fmt.Errorf("%w: malformed session id", ErrInvalidSession)
	}
	if s.isRevoked(claims.ID) {
		return Session{}, fmt.Errorf("%w: signed out", ErrInvalidSession)
	}

	sess := Session{
		ID:         claims.ID,
		OperatorID: claims.Subject,
		Email:      claims.Email,
		Token:      token,
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

// SignOut revokes the session's token for the rest of its lifetime.
// Revocations are held in memory, like the per-session workflows.
func (s *AuthService) SignOut(ctx context.Context, sess Session) {
	if sess.ID == "" {
		return
	}
	until := sess.ExpiresAt
	if until.IsZero() {
		until = s.now().Add(jwtx.DefaultSessionTTL)
	}

	s.revokedMu.Lock()
	if s.revoked == nil {
		s.revoked = make(map[string]time.Time)
	}
	s.revoked[sess.ID] = until
	s.revokedMu.Unlock()

	slogx.FromContext(ctx).Info("operator signed out", "operator_id", sess.OperatorID)
}

func (s *AuthService) isRevoked(id string) bool {
	s.revokedMu.Lock()
	defer s.revokedMu.Unlock()
	_, ok := s.revoked[id]
	return ok
}

// PruneRevoked forgets revocations whose tokens have expired by now and
// returns how many were dropped.
func (s *AuthService) PruneRevoked(now time.Time) int {
	s.revokedMu.Lock()
	defer s.revokedMu.Unlock()

	n := 0
	for id, until := range s.revoked {
		if !now.Before(until) {
			delete(s.revoked, id)
			n++
		}
	}
	return n
}

func (s *AuthService) issueConfirmation(ctx context.Context, tx store.Tx, operatorID string) (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", err
	}

	ttl := s.ConfirmationTTL
	if ttl <= 0 {
		ttl = DefaultConfirmationTTL
	}
	now := s.now()

	err = tx.Confirmations().CreateConfirmation(ctx, domain.Confirmation{
		ID:         idx.NewAt(now).String(),
		OperatorID: operatorID,
		TokenHash:  cryptox.FingerprintToken(token),
		ExpiresAt:  now.Add(ttl),
		CreatedAt:  now,
	})
	return token, err
}

func (s *AuthService) mailConfirmation(ctx context.Context, email, token string) {
	link := strings.TrimSuffix(s.BaseURL, "/") + ConfirmPath + "?" + url.Values{"token": {token}}.Encode()
	if err := s.Mailer.SendConfirmation(ctx, email, link); err != nil {
		slogx.FromContext(ctx).Error("failed to send confirmation email", "error", err)
	}
}
