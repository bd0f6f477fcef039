package public

import (
	"context"
	"net/http"
	"strings"

	"github.com/localbites/localbites-services/api/internal/interfaces/http/common"
)

func (h *Handler) storeSearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, common.ErrorResponse{Error: "missing search query"})
			return
		}

		stores, err := h.storeQueries.Search(ctx, query)
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

func (h *Handler) storeNearHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		query := r.URL.Query()
		lng, lngOK := common.ParseFloat(query.Get("lng"))
		lat, latOK := common.ParseFloat(query.Get("lat"))
		if !lngOK || !latOK {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, common.ErrorResponse{Error: "lng and lat are required"})
			return
		}

		summaries, err := h.storeQueries.Nearby(ctx, lng, lat)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		items := make([]storeSummaryResponse, 0, len(summaries))
		for _, summary := range summaries {
			items = append(items, buildStoreSummaryResponse(summary))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, items)
	}
}

func (h *Handler) storeTopHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		rated, err := h.storeQueries.TopRated(ctx)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		items := make([]ratedStoreResponse, 0, len(rated))
		for _, entry := range rated {
			items = append(items, ratedStoreResponse{
				storeResponse: buildStoreResponse(entry.Store),
				AverageRating: entry.AverageRating,
				ReviewCount:   entry.ReviewCount,
			})
		}
		common.WriteJSON(h.logger, w, http.StatusOK, items)
	}
}
