package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	adapthttp "innerlight/internal/adapter/http"
	"innerlight/internal/adapter/openai"
	"innerlight/internal/adapter/sqlstore"
	"innerlight/internal/app"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

func main() {
	addr := env("ADDR", ":8080")
	webDir := env("WEB_DIR", "web")
	dbURL := env("DATABASE_URL", "sqlite:innerlight.db")

	db, err := sqlstore.Open(dbURL)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer func() { _ = db.Close() }()

	ai := openai.New(openai.Config{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
		Model:   os.Getenv("OPENAI_MODEL"),
	})

	authSvc := app.NewAuthService(db, db)
	journalSvc := app.NewJournalService(db, db)
	beliefSvc := app.NewBeliefService(db, db, db, db, db)
	visionSvc := app.NewVisionService(db)
	profileSvc := app.NewProfileService(db, db, db, db, db, db)
	coachSvc := app.NewCoachService(ai, profileSvc, db, db)
	adminSvc := app.NewAdminService(db, db, db)

	h := adapthttp.New(authSvc, journalSvc, beliefSvc, visionSvc, coachSvc, adminSvc, setupOIDC(), webDir).Handler()
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// setupOIDC wires the optional SSO provider. Missing configuration simply
// disables the SSO routes.
func setupOIDC() adapthttp.OIDC {
	issuer := os.Getenv("OIDC_ISSUER")
	clientID := os.Getenv("OIDC_CLIENT_ID")
	if issuer == "" || clientID == "" {
		return adapthttp.OIDC{}
	}

	provider, err := oidc.NewProvider(context.Background(), issuer)
	if err != nil {
		log.Printf("oidc provider discovery failed, sso disabled: %v", err)
		return adapthttp.OIDC{}
	}

	return adapthttp.OIDC{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
			RedirectURL:  env("OIDC_REDIRECT_URL", "http://localhost:8080/api/auth/sso/callback"),
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
