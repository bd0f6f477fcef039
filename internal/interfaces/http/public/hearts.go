package public

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/localbites/localbites-services/api/internal/interfaces/http/common"
)

func (h *Handler) heartToggleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		user, ok := common.UserFromContext(ctx)
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, common.ErrorResponse{Error: "authentication required"})
			return
		}

		storeID := strings.TrimSpace(chi.URLParam(r, "id"))
		if storeID == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, common.ErrorResponse{Error: "missing store id"})
			return
		}

		hearts, err := h.users.ToggleHeart(ctx, user.ID, storeID)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, heartsResponse{Hearts: hearts})
	}
}

func (h *Handler) heartedStoresHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		user, ok := common.UserFromContext(ctx)
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, common.ErrorResponse{Error: "authentication required"})
			return
		}

		stores, err := h.users.HeartedStores(ctx, user.ID)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		items := make([]storeResponse, 0, len(stores))
		for _, store := range stores {
			items = append(items, buildStoreResponse(store))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, items)
	}
}
