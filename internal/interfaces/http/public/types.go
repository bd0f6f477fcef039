package public

import (
	"time"

	"github.com/localbites/localbites-services/api/internal/directory/application"
	"github.com/localbites/localbites-services/api/internal/directory/domain"
)

type saveStoreRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Address     string    `json:"address"`
	Coordinates []float64 `json:"coordinates"`
	Photo       string    `json:"photo"`
}

func (req saveStoreRequest) toCommand() application.SaveStoreCommand {
	return application.SaveStoreCommand{
		Name:        req.Name,
		Description: req.Description,
		Tags:        req.Tags,
		Address:     req.Address,
		Coordinates: req.Coordinates,
		Photo:       req.Photo,
	}
}

type addReviewRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

type locationResponse struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
	Address     string    `json:"address"`
}

type storeResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Tags        []string         `json:"tags"`
	Created     time.Time        `json:"created"`
	Location    locationResponse `json:"location"`
	Photo       string           `json:"photo,omitempty"`
	Author      string           `json:"author"`
}

type storeListResponse struct {
	Items      []storeResponse `json:"items"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	Count      int64           `json:"count"`
	TotalPages int             `json:"totalPages"`
}

type authorResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Gravatar string `json:"gravatar"`
}

type reviewResponse struct {
	ID      string    `json:"id"`
	Author  string    `json:"author"`
	Rating  int       `json:"rating"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

type storeDetailResponse struct {
	storeResponse
	AuthorDetail *authorResponse  `json:"authorDetail,omitempty"`
	Reviews      []reviewResponse `json:"reviews"`
}

type storeSummaryResponse struct {
	Slug        string           `json:"slug"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Location    locationResponse `json:"location"`
	Photo       string           `json:"photo,omitempty"`
}

type tagCountResponse struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type tagDirectoryResponse struct {
	Tags   []tagCountResponse `json:"tags"`
	Stores []storeResponse    `json:"stores"`
	Active string             `json:"active,omitempty"`
}

type ratedStoreResponse struct {
	storeResponse
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

type heartsResponse struct {
	Hearts []string `json:"hearts"`
}

func buildStoreResponse(store domain.Store) storeResponse {
	return storeResponse{
		ID:          store.ID,
		Name:        store.Name,
		Slug:        store.Slug,
		Description: store.Description,
		Tags:        store.Tags,
		Created:     store.Created,
		Location: locationResponse{
			Type:        store.Location.Type,
			Coordinates: store.Location.Coordinates,
			Address:     store.Location.Address,
		},
		Photo:  store.Photo,
		Author: store.AuthorID,
	}
}

func buildStoreListResponse(page *application.StorePage) storeListResponse {
	items := make([]storeResponse, 0, len(page.Stores))
	for _, store := range page.Stores {
		items = append(items, buildStoreResponse(store))
	}
	return storeListResponse{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		Count:      page.Count,
		TotalPages: page.TotalPages,
	}
}

func buildStoreDetailResponse(detail *application.StoreDetail) storeDetailResponse {
	resp := storeDetailResponse{
		storeResponse: buildStoreResponse(detail.Store),
		Reviews:       make([]reviewResponse, 0, len(detail.Reviews)),
	}
	if detail.Author != nil {
		resp.AuthorDetail = &authorResponse{
			ID:       detail.Author.ID,
			Name:     detail.Author.Name,
			Gravatar: detail.Author.Gravatar(),
		}
	}
	for _, review := range detail.Reviews {
		resp.Reviews = append(resp.Reviews, reviewResponse{
			ID:      review.ID,
			Author:  review.AuthorID,
			Rating:  review.Rating,
			Text:    review.Text,
			Created: review.Created,
		})
	}
	return resp
}

func buildStoreSummaryResponse(summary domain.StoreSummary) storeSummaryResponse {
	return storeSummaryResponse{
		Slug:        summary.Slug,
		Name:        summary.Name,
		Description: summary.Description,
		Location: locationResponse{
			Type:        summary.Location.Type,
			Coordinates: summary.Location.Coordinates,
			Address:     summary.Location.Address,
		},
		Photo: summary.Photo,
	}
}
