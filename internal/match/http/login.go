package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/mutual/internal/match/observability"
	"github.com/aussiebroadwan/mutual/internal/match/service"
	"github.com/aussiebroadwan/mutual/pkg/httpx"
	"github.com/aussiebroadwan/mutual/pkg/matchsdk"
)

type LoginHandler struct {
	UserService *service.UserService
	Metrics     *observability.Metrics
}

// ServeHTTP godoc
//
//	@Summary		Log in
//	@Description	Exchange a username and password for an access token valid for one hour.
//	@Description	An unknown username and a wrong password produce the same error.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			body	body		matchsdk.LoginRequest	true	"username and password"
//	@Success		200		{object}	matchsdk.LoginResponse	"token, userId"
//	@Failure		400		{object}	matchsdk.APIError		"invalid_input or invalid_credentials"
//	@Failure		500		{object}	matchsdk.APIError		"internal_error"
//	@Router			/api/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req matchsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.Metrics.LoginsTotal.WithLabelValues(observability.ResultInvalid).Inc()
		writeDecodeError(w, r, err)
		return
	}

	tok, err := h.UserService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.Metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		writeServiceError(w, r, err, "login")
		return
	}

	h.Metrics.LoginsTotal.WithLabelValues(observability.ResultSuccess).Inc()
	httpx.WriteJSON(w, http.StatusOK, matchsdk.LoginResponse{
		Token:  tok.Token,
		UserID: tok.UserID,
	})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return observability.ResultDenied
	case errors.Is(err, service.ErrInvalidInput):
		return observability.ResultInvalid
	default:
		return observability.ResultError
	}
}
