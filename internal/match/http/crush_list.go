package http

import (
	"net/http"

	"github.com/aussiebroadwan/mutual/internal/match/domain"
	"github.com/aussiebroadwan/mutual/internal/match/service"
	"github.com/aussiebroadwan/mutual/pkg/httpx"
	"github.com/aussiebroadwan/mutual/pkg/matchsdk"
)

type CrushListHandler struct {
	InterestService *service.InterestService
	UserService     *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		List crushes
//	@Description	List the crushes a user has recorded, oldest first. Duplicates are kept.
//	@Description	A token may only read its own user's list.
//	@Tags			Crushes
//	@Security		BearerAuth
//	@Produce		json
//	@Param			userId	path		string				true	"User ID"
//	@Success		200		{array}		matchsdk.Interest	"crushes"
//	@Failure		400		{object}	matchsdk.APIError	"invalid_input"
//	@Failure		401		{object}	matchsdk.APIError	"unauthorized"
//	@Failure		403		{object}	matchsdk.APIError	"forbidden"
//	@Failure		404		{object}	matchsdk.APIError	"not_found"
//	@Failure		500		{object}	matchsdk.APIError	"internal_error"
//	@Router			/api/crush/{userId} [get].
func (h *CrushListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := authorizeSubject(w, r)
	if !ok {
		return
	}

	if _, found, err := h.UserService.ResolveByID(ctx, userID); err != nil {
		writeServiceError(w, r, err, "lookup user")
		return
	} else if !found {
		matchsdk.ErrNotFound.WriteError(w)
		return
	}

	list, err := h.InterestService.ListByOwner(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err, "list crushes")
		return
	}

	out := make([]matchsdk.Interest, 0, len(list))
	for _, i := range list {
		out = append(out, toInterest(i))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func toInterest(i domain.Interest) matchsdk.Interest {
	return matchsdk.Interest{
		ID:        i.ID,
		UserID:    i.OwnerID,
		Name:      i.TargetName,
		CreatedAt: i.CreatedAt,
	}
}
