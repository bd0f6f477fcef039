package public

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/localbites/localbites-services/api/internal/interfaces/http/common"
)

// tagDirectoryHandler serves both /tags and /tags/{tag}: the tag cloud with
// counts plus the stores filtered by the active tag (or all tagged stores).
func (h *Handler) tagDirectoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		tag := strings.TrimSpace(chi.URLParam(r, "tag"))

		directory, err := h.storeQueries.TagDirectory(ctx, tag)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		tags := make([]tagCountResponse, 0, len(directory.Tags))
		for _, count := range directory.Tags {
			tags = append(tags, tagCountResponse{Tag: count.Tag, Count: count.Count})
		}
		stores := make([]storeResponse, 0, len(directory.Stores))
		for _, store := range directory.Stores {
			stores = append(stores, buildStoreResponse(store))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, tagDirectoryResponse{
			Tags:   tags,
			Stores: stores,
			Active: directory.Active,
		})
	}
}
