package public

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/localbites/localbites-services/api/internal/directory/application"
	"github.com/localbites/localbites-services/api/internal/interfaces/http/common"
)

func (h *Handler) reviewCreateHandler() http.HandlerFunc {
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

		var req addReviewRequest
		if err := decodeJSON(w, r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, common.ErrorResponse{Error: "invalid JSON body"})
			return
		}

		review, err := h.reviews.Add(ctx, user.ID, storeID, application.AddReviewCommand{
			Rating: req.Rating,
			Text:   req.Text,
		})
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, reviewResponse{
			ID:      review.ID,
			Author:  review.AuthorID,
			Rating:  review.Rating,
			Text:    review.Text,
			Created: review.Created,
		})
	}
}
