package handler

import (
	"github.com/classifieds/ads-api/internal/core/domain"
	"github.com/classifieds/ads-api/internal/core/ports"
)

// --- Request → Service input ---

// toCreateInput expects a validated request; every field is set.
func toCreateInput(req createAdvertisementRequest) ports.CreateAdvertisementInput {
	return ports.CreateAdvertisementInput{
		Title:       *req.Title,
		Description: *req.Description,
		Price:       *req.Price,
		Author:      *req.Author,
	}
}

func toAdvertisementPatch(req updateAdvertisementRequest) domain.AdvertisementPatch {
	return domain.AdvertisementPatch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Author:      req.Author,
	}
}

func toUserPatch(req updateUserRequest) domain.UserPatch {
	return domain.UserPatch{
		Name:     req.Name,
		Password: req.Password,
	}
}

// --- Service output → Response ---

func toAdvertisementResponse(v ports.AdvertisementView) advertisementResponse {
	return advertisementResponse{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Price:       v.Price,
		Author:      v.Author,
		CreatedAt:   v.CreatedAt,
	}
}

func toAdvertisementResponses(views []ports.AdvertisementView) []advertisementResponse {
	out := make([]advertisementResponse, len(views))
	for i, v := range views {
		out[i] = toAdvertisementResponse(v)
	}
	return out
}

func toUserResponse(v ports.UserView) userResponse {
	return userResponse{ID: v.ID, Name: v.Name, Role: string(v.Role)}
}

func toUserResponses(views []ports.UserView) []userResponse {
	out := make([]userResponse, len(views))
	for i, v := range views {
		out[i] = toUserResponse(v)
	}
	return out
}
