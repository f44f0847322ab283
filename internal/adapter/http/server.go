package adapthttp

import (
	"net/http"

	"innerlight/internal/app"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// OIDC holds the optional single-sign-on configuration. Enabled is false
// when no provider is configured; the SSO routes then return 404.
type OIDC struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth    *app.AuthService
	journal *app.JournalService
	beliefs *app.BeliefService
	visions *app.VisionService
	coach   *app.CoachService
	admin   *app.AdminService
	oidc    OIDC
	webDir  string
}

// New creates a Server wired to the given application services.
func New(
	auth *app.AuthService,
	journal *app.JournalService,
	beliefs *app.BeliefService,
	visions *app.VisionService,
	coach *app.CoachService,
	admin *app.AdminService,
	oidcCfg OIDC,
	webDir string,
) *Server {
	return &Server{
		auth:    auth,
		journal: journal,
		beliefs: beliefs,
		visions: visions,
		coach:   coach,
		admin:   admin,
		oidc:    oidcCfg,
		webDir:  webDir,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	mux.HandleFunc("GET /api/auth/me", s.requireUser(s.handleMe))
	mux.HandleFunc("GET /api/auth/sso/login", s.handleSSOLogin)
	mux.HandleFunc("GET /api/auth/sso/callback", s.handleSSOCallback)

	mux.HandleFunc("GET /api/journal", s.requireUser(s.handleListEntries))
	mux.HandleFunc("POST /api/journal", s.requireUser(s.handleCreateEntry))
	mux.HandleFunc("GET /api/journal/{id}", s.requireUser(s.handleGetEntry))
	mux.HandleFunc("PUT /api/journal/{id}", s.requireUser(s.handleUpdateEntry))
	mux.HandleFunc("DELETE /api/journal/{id}", s.requireUser(s.handleDeleteEntry))
	mux.HandleFunc("POST /api/journal/{id}/insights", s.requireUser(s.handleEntryInsights))
	mux.HandleFunc("GET /api/journal/{id}/reflections", s.requireUser(s.handleListReflections))
	mux.HandleFunc("POST /api/journal/{id}/reflections", s.requireUser(s.handleAddReflection))

	mux.HandleFunc("GET /api/beliefs", s.requireUser(s.handleListBeliefs))
	mux.HandleFunc("POST /api/beliefs", s.requireUser(s.handleCreateBelief))
	mux.HandleFunc("GET /api/beliefs/{id}", s.requireUser(s.handleGetBelief))
	mux.HandleFunc("PUT /api/beliefs/{id}", s.requireUser(s.handleUpdateBelief))
	mux.HandleFunc("DELETE /api/beliefs/{id}", s.requireUser(s.handleDeleteBelief))
	mux.HandleFunc("GET /api/beliefs/{id}/origins", s.requireUser(s.handleListOrigins))
	mux.HandleFunc("POST /api/beliefs/{id}/origins", s.requireUser(s.handleAnswerOrigin))
	mux.HandleFunc("DELETE /api/origins/{id}", s.requireUser(s.handleDeleteOrigin))
	mux.HandleFunc("GET /api/beliefs/{id}/affirmations", s.requireUser(s.handleListAffirmations))
	mux.HandleFunc("POST /api/beliefs/{id}/affirmations", s.requireUser(s.handleAddAffirmation))
	mux.HandleFunc("DELETE /api/affirmations/{id}", s.requireUser(s.handleDeleteAffirmation))
	mux.HandleFunc("GET /api/beliefs/{id}/stories", s.requireUser(s.handleListStories))
	mux.HandleFunc("POST /api/beliefs/{id}/stories", s.requireUser(s.handleSaveStory))
	mux.HandleFunc("PUT /api/stories/{id}", s.requireUser(s.handleUpdateStory))
	mux.HandleFunc("DELETE /api/stories/{id}", s.requireUser(s.handleDeleteStory))

	mux.HandleFunc("GET /api/visions", s.requireUser(s.handleListVisions))
	mux.HandleFunc("POST /api/visions", s.requireUser(s.handleSaveVision))
	mux.HandleFunc("PUT /api/visions/{id}", s.requireUser(s.handleUpdateVision))
	mux.HandleFunc("DELETE /api/visions/{id}", s.requireUser(s.handleDeleteVision))

	mux.HandleFunc("PUT /api/profile", s.requireUser(s.handleUpdateProfile))
	mux.HandleFunc("PUT /api/profile/password", s.requireUser(s.handleChangePassword))

	mux.HandleFunc("POST /api/ai/extract-beliefs", s.requireUser(s.handleExtractBeliefs))
	mux.HandleFunc("POST /api/ai/origin-inquiry", s.requireUser(s.handleOriginInquiry))
	mux.HandleFunc("POST /api/ai/functional-belief", s.requireUser(s.handleFunctionalBelief))
	mux.HandleFunc("POST /api/ai/affirmation", s.requireUser(s.handleAffirmation))
	mux.HandleFunc("POST /api/ai/feedback", s.requireUser(s.handleAIFeedback))
	mux.HandleFunc("POST /api/ai/story", s.requireUser(s.handleStreamStory))
	mux.HandleFunc("POST /api/ai/vision", s.requireUser(s.handleStreamVision))

	mux.HandleFunc("GET /api/admin/overview", s.requireAdmin(s.handleAdminOverview))
	mux.HandleFunc("GET /api/admin/users/{id}", s.requireAdmin(s.handleAdminUserDetail))
	mux.HandleFunc("POST /api/admin/users/{id}/password", s.requireAdmin(s.handleAdminResetPassword))
	mux.HandleFunc("DELETE /api/admin/users/{id}", s.requireAdmin(s.handleAdminDeleteUser))

	mux.Handle("/", spaFromDisk(s.webDir))

	return withLogging(withNoCache(mux))
}
