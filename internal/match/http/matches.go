package http

import (
	"net/http"

	"github.com/aussiebroadwan/mutual/internal/match/observability"
	"github.com/aussiebroadwan/mutual/internal/match/service"
	"github.com/aussiebroadwan/mutual/pkg/httpx"
	"github.com/aussiebroadwan/mutual/pkg/matchsdk"
)

type MatchesHandler struct {
	MatchService *service.MatchService
	Metrics      *observability.Metrics
}

// ServeHTTP godoc
//
//	@Summary		Get matches
//	@Description	List the user's crushes whose named user has a crush on them in return, in the order
//	@Description	the crushes were added. A token may only read its own user's matches.
//	@Tags			Matches
//	@Security		BearerAuth
//	@Produce		json
//	@Param			userId	path		string					true	"User ID"
//	@Success		200		{object}	matchsdk.MatchesResponse	"matches"
//	@Failure		400		{object}	matchsdk.APIError		"invalid_input"
//	@Failure		401		{object}	matchsdk.APIError		"unauthorized"
//	@Failure		403		{object}	matchsdk.APIError		"forbidden"
//	@Failure		404		{object}	matchsdk.APIError		"not_found"
//	@Failure		500		{object}	matchsdk.APIError		"internal_error"
//	@Router			/api/matches/{userId} [get].
func (h *MatchesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizeSubject(w, r)
	if !ok {
		return
	}

	matches, err := h.MatchService.ResolveMatches(r.Context(), userID)
	if err != nil {
		h.Metrics.MatchQueriesTotal.WithLabelValues(observability.ResultError).Inc()
		writeServiceError(w, r, err, "resolve matches")
		return
	}

	h.Metrics.MatchQueriesTotal.WithLabelValues(observability.ResultSuccess).Inc()
	httpx.WriteJSON(w, http.StatusOK, matchsdk.MatchesResponse{Matches: matches})
}
