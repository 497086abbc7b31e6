package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"shareit/src/apperrors"
	"shareit/src/db"
	"shareit/src/lib"
	"shareit/src/models"
	"shareit/src/models/scopes"
	"shareit/src/types"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const searchCacheTTL = time.Minute

func commentToResponse(c *models.Comment) types.APIResponseComment {
	out := types.APIResponseComment{
		ID:      c.ID,
		Text:    c.Text,
		Created: c.CreatedAt,
	}
	if c.Author != nil {
		out.AuthorName = c.Author.Name
	}
	return out
}

func commentsToResponse(comments []models.Comment) []types.APIResponseComment {
	out := make([]types.APIResponseComment, 0, len(comments))
	for i := range comments {
		out = append(out, commentToResponse(&comments[i]))
	}
	return out
}

func bookingToShort(b *models.Booking) *types.APIResponseBookingShort {
	return &types.APIResponseBookingShort{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    b.StartDate,
		End:      b.EndDate,
	}
}

func itemToResponse(item *models.Item) *types.APIResponseItem {
	return &types.APIResponseItem{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		RequestID:   item.RequestID,
		Comments:    []types.APIResponseComment{},
	}
}

// pickNextAndLast selects the item's nearest bookings around cur. Both sides
// key on the start date: next is the earliest start strictly after cur, last
// the latest start strictly before it.
func pickNextAndLast(bookings []models.Booking, cur time.Time) (next, last *types.APIResponseBookingShort) {
	var nextB, lastB *models.Booking
	for i := range bookings {
		b := &bookings[i]
		if b.StartDate.After(cur) {
			if nextB == nil || b.StartDate.Before(nextB.StartDate) {
				nextB = b
			}
		} else if b.StartDate.Before(cur) {
			if lastB == nil || b.StartDate.After(lastB.StartDate) {
				lastB = b
			}
		}
	}
	if nextB != nil {
		next = bookingToShort(nextB)
	}
	if lastB != nil {
		last = bookingToShort(lastB)
	}
	return next, last
}

func CreateNewItem(body *types.CreateItemRequestBody, ownerId uint) (*types.APIResponseItem, error) {
	item := models.Item{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
		OwnerID:     ownerId,
	}
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := ensureUserExists(tx, ownerId); err != nil {
			return err
		}
		if body.RequestID != nil {
			// a dangling request id is dropped, not rejected
			var count int64
			if err := tx.Model(&models.RequestItem{}).Where("id = ?", *body.RequestID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				item.RequestID = body.RequestID
			}
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return itemToResponse(&item), nil
}

func UpdateItem(itemId uint, body *types.UpdateItemRequestBody, ownerId uint) (*types.APIResponseItem, error) {
	var item models.Item
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := ensureUserExists(tx, ownerId); err != nil {
			return err
		}
		err := tx.Model(&models.Item{}).Where("id = ?", itemId).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("item with id: %d was not found", itemId)
		}
		if err != nil {
			return err
		}
		if item.OwnerID != ownerId {
			return apperrors.Forbidden("user with id: %d does not own item %s", ownerId, item.Name)
		}
		if body.Name != nil {
			item.Name = *body.Name
		}
		if body.Description != nil {
			item.Description = *body.Description
		}
		if body.Available != nil {
			item.Available = body.Available
		}
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return itemToResponse(&item), nil
}

func GetItemByID(userId uint, itemId uint) (*types.APIResponseItem, error) {
	cur := time.Now()
	db := db.GetDb()
	if err := ensureUserExists(db, userId); err != nil {
		return nil, err
	}
	var item models.Item
	err := db.Model(&models.Item{}).Where("id = ?", itemId).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("item with id: %d was not found", itemId)
	}
	if err != nil {
		return nil, err
	}

	out := itemToResponse(&item)

	var comments []models.Comment
	if err := db.Model(&models.Comment{}).
		Where("item_id = ?", itemId).
		Preload("Author").
		Order("created_at desc").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	out.Comments = commentsToResponse(comments)

	// next/last booking is the owner's view only
	if item.OwnerID == userId {
		var bookings []models.Booking
		if err := db.Model(&models.Booking{}).Where("item_id = ?", itemId).Find(&bookings).Error; err != nil {
			return nil, err
		}
		out.NextBooking, out.LastBooking = pickNextAndLast(bookings, cur)
	}
	return out, nil
}

// GetItemsByOwner lists the owner's items with next/last booking and comments
// attached. Children are fetched with one batch query per collection and
// grouped in memory; a single cur timestamp keeps the next/last classification
// consistent across the whole page.
func GetItemsByOwner(ownerId uint, page types.PaginationQuery) ([]types.APIResponseItem, error) {
	cur := time.Now()
	db := db.GetDb()
	if err := ensureUserExists(db, ownerId); err != nil {
		return nil, err
	}
	var items []models.Item
	if err := db.Model(&models.Item{}).
		Where("owner_id = ?", ownerId).
		Order("id asc").
		Scopes(scopes.Paginate(page)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []types.APIResponseItem{}, nil
	}

	ids := make([]uint, 0, len(items))
	for i := range items {
		ids = append(ids, items[i].ID)
	}

	var bookings []models.Booking
	if err := db.Model(&models.Booking{}).Scopes(scopes.ForItems(ids...)).Find(&bookings).Error; err != nil {
		return nil, err
	}
	var comments []models.Comment
	if err := db.Model(&models.Comment{}).
		Scopes(scopes.ForItems(ids...)).
		Preload("Author").
		Order("created_at desc").
		Find(&comments).Error; err != nil {
		return nil, err
	}

	bookingMap := make(map[uint][]models.Booking, len(items))
	for _, b := range bookings {
		bookingMap[b.ItemID] = append(bookingMap[b.ItemID], b)
	}
	commentMap := make(map[uint][]models.Comment, len(items))
	for _, c := range comments {
		commentMap[c.ItemID] = append(commentMap[c.ItemID], c)
	}

	out := make([]types.APIResponseItem, 0, len(items))
	for i := range items {
		item := &items[i]
		r := itemToResponse(item)
		r.NextBooking, r.LastBooking = pickNextAndLast(bookingMap[item.ID], cur)
		r.Comments = commentsToResponse(commentMap[item.ID])
		out = append(out, *r)
	}
	return out, nil
}

func SearchItems(text string, userId uint, page types.PaginationQuery) ([]types.APIResponseItem, error) {
	// blank query short-circuits before any store round-trip
	text = strings.TrimSpace(text)
	if text == "" {
		return []types.APIResponseItem{}, nil
	}
	db := db.GetDb()
	if err := ensureUserExists(db, userId); err != nil {
		return nil, err
	}

	// cache is consulted only after the requester is known to exist
	cacheKey := fmt.Sprintf("items:search:%s:%d:%d", strings.ToLower(text), page.From, page.Size)
	rd := lib.GetRedisClient()
	if rd != nil {
		cached, err := rd.Get(context.Background(), cacheKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			log.Printf("Error reading from cache: %s\n", err.Error())
		}
		if cached != "" {
			var out []types.APIResponseItem
			if err := json.Unmarshal([]byte(cached), &out); err == nil {
				return out, nil
			}
		}
	}

	pattern := "%" + strings.ToLower(text) + "%"
	var items []models.Item
	if err := db.Model(&models.Item{}).
		Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?) AND available = ?", pattern, pattern, true).
		Scopes(scopes.Paginate(page)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	out := make([]types.APIResponseItem, 0, len(items))
	for i := range items {
		out = append(out, *itemToResponse(&items[i]))
	}
	if rd != nil && len(out) > 0 {
		if payload, err := json.Marshal(out); err == nil {
			rd.SetEx(context.Background(), cacheKey, string(payload), searchCacheTTL)
		}
	}
	return out, nil
}

func SearchComments(itemId uint, text string, userId uint, page types.PaginationQuery) ([]types.APIResponseComment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []types.APIResponseComment{}, nil
	}
	db := db.GetDb()
	if err := ensureUserExists(db, userId); err != nil {
		return nil, err
	}
	pattern := "%" + strings.ToLower(text) + "%"
	var comments []models.Comment
	if err := db.Model(&models.Comment{}).
		Where("item_id = ? AND LOWER(text) LIKE ?", itemId, pattern).
		Preload("Author").
		Order("created_at desc").
		Scopes(scopes.Paginate(page)).
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return commentsToResponse(comments), nil
}

func AddComment(itemId uint, body *types.CreateCommentRequestBody, userId uint) (*types.APIResponseComment, error) {
	if strings.TrimSpace(body.Text) == "" {
		return nil, apperrors.BadRequest("comment text must not be blank")
	}
	comment := models.Comment{Text: body.Text, ItemID: itemId, AuthorID: userId}
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		// only a user who actually finished renting the item may comment
		var booking models.Booking
		err := tx.Model(&models.Booking{}).
			Where("booker_id = ? AND item_id = ? AND end_date < ?", userId, itemId, time.Now()).
			First(&booking).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.BadRequest("user with id: %d has not rented item with id: %d", userId, itemId)
		}
		if err != nil {
			return err
		}
		return tx.Create(&comment).Error
	})
	if err != nil {
		return nil, err
	}
	var author models.User
	if err := db.Model(&models.User{}).Where("id = ?", userId).First(&author).Error; err != nil {
		log.Printf("Error loading comment author: %s\n", err.Error())
	} else {
		comment.Author = &author
	}
	r := commentToResponse(&comment)
	return &r, nil
}
