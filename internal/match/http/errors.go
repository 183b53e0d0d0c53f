package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/mutual/internal/match/service"
	"github.com/aussiebroadwan/mutual/pkg/httpx"
	"github.com/aussiebroadwan/mutual/pkg/idx"
	"github.com/aussiebroadwan/mutual/pkg/matchsdk"
	"github.com/aussiebroadwan/mutual/pkg/slogx"
)

// writeServiceError maps a service error onto its API error. Anything
// unrecognised is logged with its detail and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		matchsdk.ErrInvalidInput.WriteError(w)
	case errors.Is(err, service.ErrUsernameTaken):
		matchsdk.ErrUsernameTaken.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		matchsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrUserNotFound):
		matchsdk.ErrNotFound.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error(op+" failed", slog.Any("err", err))
		matchsdk.ErrInternal.WriteError(w)
	}
}

// writeDecodeError answers a body DecodeJSON rejected.
func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var reqErr *httpx.RequestError
	if errors.As(err, &reqErr) {
		matchsdk.ErrInvalidInput.WithMessage(reqErr.Message).WriteError(w)
		return
	}
	slogx.FromContext(r.Context()).Error("decode request failed", slog.Any("err", err))
	matchsdk.ErrInternal.WriteError(w)
}

// authorizeSubject reports whether the token belongs to the user named in the
// path, writing 401, 400 for a malformed id, or 403 when it does not.
func authorizeSubject(w http.ResponseWriter, r *http.Request) (string, bool) {
	subject, ok := httpx.UserIDFromContext(r.Context())
	if !ok || subject == "" {
		matchsdk.ErrUnauthorized.WriteError(w)
		return "", false
	}

	if !idx.Valid(r.PathValue("userId")) {
		matchsdk.ErrInvalidInput.WithMessage("malformed user id").WriteError(w)
		return "", false
	}

	if r.PathValue("userId") != subject {
		slogx.FromContext(r.Context()).Info("path user does not match token subject",
			slog.String("user_id", subject),
			slog.String("path_user_id", r.PathValue("userId")),
		)
		matchsdk.ErrForbidden.WriteError(w)
		return "", false
	}
	return subject, true
}
