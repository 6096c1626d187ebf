package admin

import (
	"net/http"

	"github.com/gethavoc/havoc/pkg/chaos"
	"github.com/gethavoc/havoc/pkg/httputil"
)

func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteOK(w, map[string]string{"status": "ok"})
}

// handleGetStats returns a snapshot of the engine's counters.
func (a *API) handleGetStats(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteOK(w, a.engine.Stats())
}

// handleResetStats zeros the engine's counters.
func (a *API) handleResetStats(w http.ResponseWriter, _ *http.Request) {
	a.engine.ResetStats()
	a.logger.Info("chaos stats reset")
	httputil.WriteNoContent(w)
}

// handleGetConfig returns the resolved engine configuration.
func (a *API) handleGetConfig(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteOK(w, a.engine.Config())
}

// handleListProfiles returns the built-in profile catalog.
func (a *API) handleListProfiles(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteOK(w, chaos.ListProfiles())
}

// handleGetProfile returns one built-in profile by name.
func (a *API) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	p, ok := chaos.GetProfile(name)
	if !ok {
		httputil.WriteNotFound(w, "profile_not_found", "no built-in profile named "+name)
		return
	}
	httputil.WriteOK(w, p)
}
