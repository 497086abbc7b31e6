package utils

import (
	"errors"
	"shareit/src/apperrors"
	"shareit/src/db"
	"shareit/src/models"
	"shareit/src/models/scopes"
	"shareit/src/types"
	"strings"

	"gorm.io/gorm"
)

func requestToResponse(r *models.RequestItem) *types.APIResponseRequest {
	out := &types.APIResponseRequest{
		ID:          r.ID,
		Description: r.Description,
		Created:     r.CreatedAt,
		Items:       make([]types.APIResponseItemAnswer, 0, len(r.Items)),
	}
	for i := range r.Items {
		item := &r.Items[i]
		out.Items = append(out.Items, types.APIResponseItemAnswer{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Available:   item.Available,
			RequestID:   item.RequestID,
		})
	}
	return out
}

func requestsToResponse(requests []models.RequestItem) []types.APIResponseRequest {
	out := make([]types.APIResponseRequest, 0, len(requests))
	for i := range requests {
		out = append(out, *requestToResponse(&requests[i]))
	}
	return out
}

func CreateRequest(body *types.CreateRequestRequestBody, userId uint) (*types.APIResponseRequest, error) {
	if strings.TrimSpace(body.Description) == "" {
		return nil, apperrors.BadRequest("request description must not be blank")
	}
	request := models.RequestItem{Description: body.Description, RequestorID: userId}
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := ensureUserExists(tx, userId); err != nil {
			return err
		}
		return tx.Create(&request).Error
	})
	if err != nil {
		return nil, err
	}
	return requestToResponse(&request), nil
}

func GetRequestsByUser(userId uint) ([]types.APIResponseRequest, error) {
	db := db.GetDb()
	if err := ensureUserExists(db, userId); err != nil {
		return nil, err
	}
	var requests []models.RequestItem
	if err := db.Model(&models.RequestItem{}).
		Where("requestor_id = ?", userId).
		Preload("Items").
		Order("created_at desc").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requestsToResponse(requests), nil
}

// GetAllRequests lists requests authored by everyone except userId, so a user
// browsing for items to list never sees their own posts.
func GetAllRequests(userId uint, page types.PaginationQuery) ([]types.APIResponseRequest, error) {
	db := db.GetDb()
	if err := ensureUserExists(db, userId); err != nil {
		return nil, err
	}
	var requests []models.RequestItem
	if err := db.Model(&models.RequestItem{}).
		Where("requestor_id <> ?", userId).
		Preload("Items").
		Order("created_at desc").
		Scopes(scopes.Paginate(page)).
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requestsToResponse(requests), nil
}

func GetRequestByID(userId uint, requestId uint) (*types.APIResponseRequest, error) {
	db := db.GetDb()
	if err := ensureUserExists(db, userId); err != nil {
		return nil, err
	}
	var request models.RequestItem
	err := db.Model(&models.RequestItem{}).
		Scopes(scopes.WithID(requestId)).
		Preload("Items").
		First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("request with id: %d was not found", requestId)
	}
	if err != nil {
		return nil, err
	}
	return requestToResponse(&request), nil
}
