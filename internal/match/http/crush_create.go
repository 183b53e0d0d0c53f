package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/mutual/internal/match/observability"
	"github.com/aussiebroadwan/mutual/internal/match/service"
	"github.com/aussiebroadwan/mutual/pkg/httpx"
	"github.com/aussiebroadwan/mutual/pkg/matchsdk"
	"github.com/aussiebroadwan/mutual/pkg/slogx"
)

type CrushCreateHandler struct {
	InterestService *service.InterestService
	Metrics         *observability.Metrics
}

// ServeHTTP godoc
//
//	@Summary		Add a crush
//	@Description	Record interest in a name. The owner is the token subject. The name is free text,
//	@Description	need not belong to a registered user, and may be added more than once.
//	@Tags			Crushes
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		matchsdk.CrushRequest	true	"name"
//	@Success		201		{object}	matchsdk.Interest		"the recorded crush"
//	@Failure		400		{object}	matchsdk.APIError		"invalid_input"
//	@Failure		401		{object}	matchsdk.APIError		"unauthorized"
//	@Failure		404		{object}	matchsdk.APIError		"not_found"
//	@Failure		500		{object}	matchsdk.APIError		"internal_error"
//	@Router			/api/crush [post].
func (h *CrushCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok || userID == "" {
		matchsdk.ErrUnauthorized.WriteError(w)
		return
	}

	var req matchsdk.CrushRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	interest, err := h.InterestService.Add(ctx, userID, req.Name)
	if err != nil {
		writeServiceError(w, r, err, "add crush")
		return
	}
	h.Metrics.InterestsTotal.Inc()

	// The crush is already stored; a failed lookup here only costs the log
	// line and the counter.
	if formed, back, err := h.formsMatch(r, userID, interest.TargetName); err != nil {
		log.Warn("reciprocal lookup failed", slog.Any("err", err))
	} else if formed {
		h.Metrics.MatchesFormedTotal.Inc()
		log.Info("match formed",
			slog.String("user_id", userID),
			slog.String("other_user_id", back),
		)
	}

	httpx.WriteJSON(w, http.StatusCreated, toInterest(interest))
}

// formsMatch reports whether the crush just added completed a match: the named
// user already named the owner back and this is the owner's first crush on
// that name. It also returns the other user's id.
func (h *CrushCreateHandler) formsMatch(r *http.Request, userID, name string) (bool, string, error) {
	ctx := r.Context()

	back, ok, err := h.InterestService.FindReciprocal(ctx, userID, name)
	if err != nil || !ok || back.OwnerID == userID {
		return false, "", err
	}

	n, err := h.InterestService.CountByTarget(ctx, userID, name)
	if err != nil {
		return false, "", err
	}
	return n == 1, back.OwnerID, nil
}
