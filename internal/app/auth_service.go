// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base32"
	"encoding/hex"
	"errors"
	"regexp"
	"strings"
	"time"

	"innerlight/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/pbkdf2"
)

var (
	// ErrInvalidCredentials indicates that the provided email or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrSessionNotFound indicates that the session does not exist or has expired.
	ErrSessionNotFound = errors.New("session not found")
	// ErrEmailTaken indicates that an account with the given email already exists.
	ErrEmailTaken = errors.New("an account with this email already exists")
	// ErrNotFound indicates that the requested entity does not exist or is not
	// owned by the caller.
	ErrNotFound = errors.New("not found")
)

const (
	sessionLifetime  = 30 * 24 * time.Hour
	refreshThreshold = 15 * 24 * time.Hour

	pbkdf2Iterations = 100_000
	saltLength       = 16
	keyLength        = 32
	tokenLength      = 20
)

// Session tokens use a lowercase base32 alphabet: URL-safe and
// case-insensitive, so cookies survive any intermediary normalization.
var tokenEncoding = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService handles account credentials and session lifecycle.
type AuthService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// HashPassword derives a storable credential from a plaintext password.
// The result is hex(salt):hex(pbkdf2-sha256(password, salt)); the random salt
// guarantees two hashes of the same password differ.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyLength, sha256.New)
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

// VerifyPassword re-derives the stored credential with its salt and compares
// in constant time. Malformed stored values fail closed.
func VerifyPassword(password, stored string) bool {
	saltHex, hashHex, ok := strings.Cut(stored, ":")
	if !ok {
		return false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}
	got := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyLength, sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

// GenerateSessionToken draws a fresh high-entropy session token. The token is
// the only secret ever sent to the client.
func GenerateSessionToken() (string, error) {
	b := make([]byte, tokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return tokenEncoding.EncodeToString(b), nil
}

// HashSessionToken maps a token to its storage identifier. Unsalted: tokens
// are already random, and a deterministic hash keeps lookup O(1).
func HashSessionToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CreateSession mints a token and stores a session keyed by its hash.
// It returns the raw token for the cookie alongside the stored record.
func (s *AuthService) CreateSession(ctx context.Context, userID string) (string, *domain.Session, error) {
	token, err := GenerateSessionToken()
	if err != nil {
		return "", nil, err
	}
	session := &domain.Session{
		ID:        HashSessionToken(token),
		UserID:    userID,
		ExpiresAt: time.Now().Add(sessionLifetime),
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return "", nil, err
	}
	return token, session, nil
}

// ValidateSession resolves a token to its user and session. Expired sessions
// are deleted on sight. A session past the halfway point of its lifetime has
// its expiry extended by a full lifetime.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*domain.User, *domain.Session, error) {
	id := HashSessionToken(token)

	session, err := s.sessions.GetSession(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, ErrSessionNotFound
	}

	now := time.Now()
	if !now.Before(session.ExpiresAt) {
		_ = s.sessions.DeleteSession(ctx, id)
		return nil, nil, ErrSessionNotFound
	}

	if !now.Before(session.ExpiresAt.Add(-refreshThreshold)) {
		session.ExpiresAt = now.Add(sessionLifetime)
		if err := s.sessions.UpdateSessionExpiry(ctx, id, session.ExpiresAt); err != nil {
			return nil, nil, err
		}
	}

	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrSessionNotFound
	}
	return user, session, nil
}

// InvalidateSession deletes the session matching the token; idempotent.
func (s *AuthService) InvalidateSession(ctx context.Context, token string) error {
	return s.sessions.DeleteSession(ctx, HashSessionToken(token))
}

// Register creates an account and an initial session.
func (s *AuthService) Register(ctx context.Context, email, password string, name *string) (*domain.User, string, *domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || !emailPattern.MatchString(email) {
		return nil, "", nil, errors.New("please enter a valid email address")
	}
	if len(password) < 8 {
		return nil, "", nil, errors.New("password must be at least 8 characters")
	}

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", nil, err
	}
	if existing != nil {
		return nil, "", nil, ErrEmailTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         "user",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, "", nil, err
	}

	token, session, err := s.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, "", nil, err
	}
	return user, token, session, nil
}

// Login authenticates a user and creates a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, *domain.Session, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, "", nil, err
	}
	if user == nil || !VerifyPassword(password, user.PasswordHash) {
		return nil, "", nil, ErrInvalidCredentials
	}

	token, session, err := s.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, "", nil, err
	}
	return user, token, session, nil
}

// LoginWithEmail creates a session for an externally authenticated identity
// (OIDC SSO), provisioning the account on first sight. SSO accounts carry an
// empty credential and can only log in through the provider.
func (s *AuthService) LoginWithEmail(ctx context.Context, email string) (*domain.User, string, *domain.Session, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", nil, err
	}
	if user == nil {
		now := time.Now()
		user = &domain.User{
			ID:        uuid.NewString(),
			Email:     email,
			Role:      "user",
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.users.CreateUser(ctx, user); err != nil {
			// Lost a provisioning race; the row should exist now.
			user, err = s.users.GetUserByEmail(ctx, email)
			if err != nil {
				return nil, "", nil, err
			}
			if user == nil {
				return nil, "", nil, errors.New("sso account provisioning failed")
			}
		}
	}

	token, session, err := s.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, "", nil, err
	}
	return user, token, session, nil
}

// ChangePassword verifies the current password and stores a new credential.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if current == "" {
		return errors.New("current password is required")
	}
	if len(next) < 8 {
		return errors.New("new password must be at least 8 characters")
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if !VerifyPassword(current, user.PasswordHash) {
		return errors.New("current password is incorrect")
	}

	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(ctx, userID, hash, time.Now())
}

// UpdateProfile stores the user's optional profile attributes.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, name, gender, dateOfBirth, placeOfBirth *string) (*domain.User, error) {
	if gender != nil && *gender != "male" && *gender != "female" {
		return nil, errors.New("invalid gender value")
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	user.Name = name
	user.Gender = gender
	user.DateOfBirth = dateOfBirth
	user.PlaceOfBirth = placeOfBirth
	user.UpdatedAt = time.Now()
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
