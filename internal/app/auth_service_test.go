package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"innerlight/internal/adapter/memory"
	"innerlight/internal/app"
	"innerlight/internal/domain"
)

// racingUsers fails every CreateUser but writes the row anyway, simulating a
// concurrent provisioner winning the insert.
type racingUsers struct {
	*memory.DB
}

func (r *racingUsers) CreateUser(ctx context.Context, user *domain.User) error {
	_ = r.DB.CreateUser(ctx, user)
	return errors.New("duplicate key value violates unique constraint")
}

func newAuthService() (*app.AuthService, *memory.DB) {
	db := memory.New()
	return app.NewAuthService(db, db), db
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := app.HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.Contains(hash, ":") {
		t.Fatalf("hash missing salt separator: %q", hash)
	}

	if !app.VerifyPassword("correct horse battery", hash) {
		t.Error("correct password rejected")
	}
	if app.VerifyPassword("wrong password", hash) {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	a, err := app.HashPassword("same password")
	if err != nil {
		t.Fatal(err)
	}
	b, err := app.HashPassword("same password")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two hashes of the same password are identical")
	}
}

func TestVerifyPasswordMalformedStored(t *testing.T) {
	for _, stored := range []string{"", "no-separator", "zz:zz", "00ff:not-hex"} {
		if app.VerifyPassword("anything", stored) {
			t.Errorf("malformed stored value %q verified", stored)
		}
	}
}

func TestGenerateSessionToken(t *testing.T) {
	a, err := app.GenerateSessionToken()
	if err != nil {
		t.Fatal(err)
	}
	b, err := app.GenerateSessionToken()
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two tokens are identical")
	}
	if len(a) != 32 {
		t.Errorf("token length = %d, want 32", len(a))
	}
	for _, r := range a {
		if !strings.ContainsRune("abcdefghijklmnopqrstuvwxyz234567", r) {
			t.Errorf("token contains %q outside the base32 alphabet", r)
		}
	}
}

func TestCreateAndValidateSession(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	user, token, session, err := svc.Register(ctx, "a@example.com", "password123", nil)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if session.ID != app.HashSessionToken(token) {
		t.Error("session ID is not the token hash")
	}

	got, gotSession, err := svc.ValidateSession(ctx, token)
	if err != nil {
		t.Fatalf("ValidateSession: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("validated user = %s, want %s", got.ID, user.ID)
	}
	if gotSession.UserID != user.ID {
		t.Errorf("session user = %s, want %s", gotSession.UserID, user.ID)
	}

	if _, _, err := svc.ValidateSession(ctx, "not-a-real-token"); !errors.Is(err, app.ErrSessionNotFound) {
		t.Errorf("unknown token error = %v, want ErrSessionNotFound", err)
	}
}

func TestValidateSessionExpiredIsDeleted(t *testing.T) {
	svc, db := newAuthService()
	ctx := context.Background()

	_, token, _, err := svc.Register(ctx, "a@example.com", "password123", nil)
	if err != nil {
		t.Fatal(err)
	}

	id := app.HashSessionToken(token)
	if err := db.UpdateSessionExpiry(ctx, id, time.Now().Add(-time.Minute)); err != nil {
		t.Fatal(err)
	}

	if _, _, err := svc.ValidateSession(ctx, token); !errors.Is(err, app.ErrSessionNotFound) {
		t.Fatalf("expired session error = %v, want ErrSessionNotFound", err)
	}

	row, err := db.GetSession(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if row != nil {
		t.Error("expired session row survived validation")
	}
}

func TestValidateSessionRefreshesPastHalfway(t *testing.T) {
	svc, db := newAuthService()
	ctx := context.Background()

	_, token, _, err := svc.Register(ctx, "a@example.com", "password123", nil)
	if err != nil {
		t.Fatal(err)
	}
	id := app.HashSessionToken(token)

	// More than half the lifetime left: expiry must not move.
	farOut := time.Now().Add(20 * 24 * time.Hour)
	if err := db.UpdateSessionExpiry(ctx, id, farOut); err != nil {
		t.Fatal(err)
	}
	_, session, err := svc.ValidateSession(ctx, token)
	if err != nil {
		t.Fatal(err)
	}
	if !session.ExpiresAt.Equal(farOut) {
		t.Errorf("fresh session expiry moved from %v to %v", farOut, session.ExpiresAt)
	}

	// Less than half left: expiry is pushed out a full lifetime.
	nearEnd := time.Now().Add(10 * 24 * time.Hour)
	if err := db.UpdateSessionExpiry(ctx, id, nearEnd); err != nil {
		t.Fatal(err)
	}
	_, session, err = svc.ValidateSession(ctx, token)
	if err != nil {
		t.Fatal(err)
	}
	if !session.ExpiresAt.After(time.Now().Add(29 * 24 * time.Hour)) {
		t.Errorf("stale session not extended, expiry %v", session.ExpiresAt)
	}

	row, err := db.GetSession(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if !row.ExpiresAt.Equal(session.ExpiresAt) {
		t.Error("extended expiry not persisted")
	}
}

func TestInvalidateSessionIdempotent(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, token, _, err := svc.Register(ctx, "a@example.com", "password123", nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.InvalidateSession(ctx, token); err != nil {
		t.Fatalf("first invalidate: %v", err)
	}
	if err := svc.InvalidateSession(ctx, token); err != nil {
		t.Fatalf("second invalidate: %v", err)
	}
	if _, _, err := svc.ValidateSession(ctx, token); !errors.Is(err, app.ErrSessionNotFound) {
		t.Errorf("invalidated token still validates: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	if _, _, _, err := svc.Register(ctx, "not-an-email", "password123", nil); err == nil {
		t.Error("bad email accepted")
	}
	if _, _, _, err := svc.Register(ctx, "a@example.com", "short", nil); err == nil {
		t.Error("short password accepted")
	}

	if _, _, _, err := svc.Register(ctx, "a@example.com", "password123", nil); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := svc.Register(ctx, "a@example.com", "password123", nil); !errors.Is(err, app.ErrEmailTaken) {
		t.Errorf("duplicate email error = %v, want ErrEmailTaken", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	if _, _, _, err := svc.Register(ctx, "a@example.com", "password123", nil); err != nil {
		t.Fatal(err)
	}

	if _, _, _, err := svc.Login(ctx, "a@example.com", "password124"); !errors.Is(err, app.ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, _, _, err := svc.Login(ctx, "nobody@example.com", "password123"); !errors.Is(err, app.ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", err)
	}

	user, _, _, err := svc.Login(ctx, "a@example.com", "password123")
	if err != nil {
		t.Fatalf("valid login: %v", err)
	}
	if user.Email != "a@example.com" {
		t.Errorf("logged-in email = %s", user.Email)
	}
}

func TestLoginWithEmailProvisionsAccount(t *testing.T) {
	svc, db := newAuthService()
	ctx := context.Background()

	user, token, _, err := svc.LoginWithEmail(ctx, "sso@example.com")
	if err != nil {
		t.Fatalf("LoginWithEmail: %v", err)
	}
	if user.Email != "sso@example.com" {
		t.Errorf("provisioned email = %s", user.Email)
	}
	if user.PasswordHash != "" {
		t.Error("sso account has a credential")
	}
	if _, _, err := svc.ValidateSession(ctx, token); err != nil {
		t.Errorf("fresh sso session rejected: %v", err)
	}

	row, err := db.GetUserByEmail(ctx, "sso@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if row == nil {
		t.Fatal("provisioned user not persisted")
	}
}

func TestLoginWithEmailProvisionRace(t *testing.T) {
	db := memory.New()
	svc := app.NewAuthService(&racingUsers{DB: db}, db)
	ctx := context.Background()

	// The insert fails but the row exists, so the login must recover.
	user, _, _, err := svc.LoginWithEmail(ctx, "sso@example.com")
	if err != nil {
		t.Fatalf("LoginWithEmail after lost race: %v", err)
	}
	if user.Email != "sso@example.com" {
		t.Errorf("recovered email = %s", user.Email)
	}
}

func TestLoginWithEmailProvisionFailure(t *testing.T) {
	db := memory.New()
	svc := app.NewAuthService(&failingUsers{DB: db}, db)
	ctx := context.Background()

	_, _, _, err := svc.LoginWithEmail(ctx, "sso@example.com")
	if err == nil {
		t.Fatal("provisioning failure not surfaced")
	}
	if strings.Contains(err.Error(), "%!w") {
		t.Errorf("error wraps a nil cause: %v", err)
	}
}

// failingUsers fails CreateUser without writing the row, so the re-fetch
// after a failed insert still finds nothing.
type failingUsers struct {
	*memory.DB
}

func (f *failingUsers) CreateUser(ctx context.Context, user *domain.User) error {
	return errors.New("connection reset by peer")
}

func TestChangePassword(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "a@example.com", "password123", nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.ChangePassword(ctx, user.ID, "wrong", "newpassword1"); err == nil {
		t.Error("wrong current password accepted")
	}
	if err := svc.ChangePassword(ctx, user.ID, "password123", "short"); err == nil {
		t.Error("short new password accepted")
	}
	if err := svc.ChangePassword(ctx, user.ID, "password123", "newpassword1"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, _, _, err := svc.Login(ctx, "a@example.com", "password123"); !errors.Is(err, app.ErrInvalidCredentials) {
		t.Error("old password still logs in")
	}
	if _, _, _, err := svc.Login(ctx, "a@example.com", "newpassword1"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}

func TestUpdateProfileGender(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "a@example.com", "password123", nil)
	if err != nil {
		t.Fatal(err)
	}

	bad := "other"
	if _, err := svc.UpdateProfile(ctx, user.ID, nil, &bad, nil, nil); err == nil {
		t.Error("invalid gender accepted")
	}

	name := "Ada"
	gender := "female"
	updated, err := svc.UpdateProfile(ctx, user.ID, &name, &gender, nil, nil)
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Name == nil || *updated.Name != "Ada" {
		t.Error("name not stored")
	}
	if updated.Gender == nil || *updated.Gender != "female" {
		t.Error("gender not stored")
	}
}
