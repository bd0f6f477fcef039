package public

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/localbites/localbites-services/api/internal/interfaces/http/common"
)

// maxStoreRequestBody caps JSON request bodies for store/review endpoints.
const maxStoreRequestBody = 1 << 20

const requestTimeout = 5 * time.Second

func (h *Handler) storeListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		page, _ := common.ParsePositiveInt(r.URL.Query().Get("page"), 1)

		result, err := h.storeQueries.List(ctx, page)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildStoreListResponse(result))
	}
}

func (h *Handler) storeDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, common.ErrorResponse{Error: "missing store slug"})
			return
		}

		detail, err := h.storeQueries.FindBySlug(ctx, slug)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildStoreDetailResponse(detail))
	}
}

func (h *Handler) storeCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		user, ok := common.UserFromContext(ctx)
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, common.ErrorResponse{Error: "authentication required"})
			return
		}

		var req saveStoreRequest
		if err := decodeJSON(w, r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, common.ErrorResponse{Error: "invalid JSON body"})
			return
		}

		store, err := h.stores.Create(ctx, user.ID, req.toCommand())
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		h.logger.WithField("slug", store.Slug).Info("store created")
		common.WriteJSON(h.logger, w, http.StatusCreated, buildStoreResponse(*store))
	}
}

func (h *Handler) storeUpdateHandler() http.HandlerFunc {
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

		var req saveStoreRequest
		if err := decodeJSON(w, r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, common.ErrorResponse{Error: "invalid JSON body"})
			return
		}

		store, err := h.stores.Update(ctx, storeID, user.ID, req.toCommand())
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildStoreResponse(*store))
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxStoreRequestBody)
	return json.NewDecoder(r.Body).Decode(dst)
}
