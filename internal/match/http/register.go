package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/mutual/internal/match/observability"
	"github.com/aussiebroadwan/mutual/internal/match/service"
	"github.com/aussiebroadwan/mutual/pkg/httpx"
	"github.com/aussiebroadwan/mutual/pkg/matchsdk"
)

type RegisterHandler struct {
	UserService *service.UserService
	Metrics     *observability.Metrics
}

// ServeHTTP godoc
//
//	@Summary		Register
//	@Description	Create a user account. The username is trimmed and must be unique (case sensitive).
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			body	body		matchsdk.RegisterRequest	true	"username and password"
//	@Success		201		{object}	matchsdk.MessageResponse	"message"
//	@Failure		400		{object}	matchsdk.APIError			"invalid_input or username_taken"
//	@Failure		500		{object}	matchsdk.APIError			"internal_error"
//	@Router			/api/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req matchsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.Metrics.RegistrationsTotal.WithLabelValues(observability.ResultInvalid).Inc()
		writeDecodeError(w, r, err)
		return
	}

	if _, err := h.UserService.Register(r.Context(), req.Username, req.Password); err != nil {
		h.Metrics.RegistrationsTotal.WithLabelValues(registerResult(err)).Inc()
		writeServiceError(w, r, err, "register")
		return
	}

	h.Metrics.RegistrationsTotal.WithLabelValues(observability.ResultSuccess).Inc()
	httpx.WriteJSON(w, http.StatusCreated, matchsdk.MessageResponse{Message: "user registered"})
}

func registerResult(err error) string {
	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		return observability.ResultTaken
	case errors.Is(err, service.ErrInvalidInput):
		return observability.ResultInvalid
	default:
		return observability.ResultError
	}
}
