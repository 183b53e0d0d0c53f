package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/mutual/pkg/httpx"
	"github.com/aussiebroadwan/mutual/pkg/matchsdk"
	"github.com/aussiebroadwan/mutual/pkg/slogx"
)

// LogoutHandler acknowledges a logout. Tokens are not revoked: they stay
// valid until they expire and the client is expected to discard its copy.
type LogoutHandler struct{}

// ServeHTTP godoc
//
//	@Summary		Log out
//	@Description	Acknowledge a logout. The token is not revoked and remains valid until it expires.
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	matchsdk.MessageResponse	"message"
//	@Router			/api/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if claims, ok := httpx.ClaimsFromContext(r.Context()); ok {
		slogx.FromContext(r.Context()).Info("user logged out",
			slog.String("user_id", claims.Subject),
			slog.String("sid", claims.SID),
		)
	}

	httpx.WriteJSON(w, http.StatusOK, matchsdk.MessageResponse{Message: "logged out"})
}
