package utils

import (
	"errors"
	"shareit/src/apperrors"
	"shareit/src/config"
	"shareit/src/db"
	"shareit/src/models"
	"shareit/src/models/scopes"
	"shareit/src/types"
	"time"

	"gorm.io/gorm"
)

func bookingToResponse(b *models.Booking) *types.APIResponseBooking {
	out := &types.APIResponseBooking{
		ID:     b.ID,
		Start:  b.StartDate,
		End:    b.EndDate,
		Status: b.Status,
	}
	if b.Item != nil {
		out.Item = &types.APIResponseItemShort{ID: b.Item.ID, Name: b.Item.Name}
	}
	if b.Booker != nil {
		out.Booker = &types.APIResponseUserShort{ID: b.Booker.ID, Name: b.Booker.Name}
	}
	return out
}

func CreateBooking(body *types.CreateBookingRequestBody, bookerId uint) (*types.APIResponseBooking, error) {
	start, err := time.Parse(config.TIME_PARSE_FORMAT, body.Start)
	if err != nil {
		return nil, apperrors.BadRequest("could not parse start date: %s", body.Start)
	}
	end, err := time.Parse(config.TIME_PARSE_FORMAT, body.End)
	if err != nil {
		return nil, apperrors.BadRequest("could not parse end date: %s", body.End)
	}

	booking := models.Booking{
		StartDate: start,
		EndDate:   end,
		ItemID:    body.ItemID,
		BookerID:  bookerId,
		Status:    types.BOOKING_WAITING,
	}
	db := db.GetDb()
	err = db.Transaction(func(tx *gorm.DB) error {
		var item models.Item
		err := tx.Model(&models.Item{}).Where("id = ?", body.ItemID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("item with id: %d was not found", body.ItemID)
		}
		if err != nil {
			return err
		}
		if item.Available == nil || !*item.Available {
			return apperrors.BadRequest("item with id: %d is not available for booking", item.ID)
		}
		if item.OwnerID == bookerId {
			return apperrors.BadRequest("owner cannot book their own item")
		}
		var booker models.User
		err = tx.Model(&models.User{}).Where("id = ?", bookerId).First(&booker).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("user with id: %d was not found", bookerId)
		}
		if err != nil {
			return err
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		booking.Item = &item
		booking.Booker = &booker
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bookingToResponse(&booking), nil
}

// GetBookingByID is visible to the booker and the item's owner only. Anyone
// else gets the same not-found error as a missing id, so existence is not
// leaked.
func GetBookingByID(bookingId uint, userId uint) (*types.APIResponseBooking, error) {
	db := db.GetDb()
	var booking models.Booking
	err := db.Model(&models.Booking{}).
		Joins("Item").
		Joins("Booker").
		Where(`bookings.id = ? AND (bookings.booker_id = ? OR "Item".owner_id = ?)`, bookingId, userId, userId).
		First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("booking with id: %d was not found", bookingId)
	}
	if err != nil {
		return nil, err
	}
	return bookingToResponse(&booking), nil
}

func ApproveBooking(bookingId uint, approved bool, ownerId uint) (*types.APIResponseBooking, error) {
	newStatus := types.BOOKING_REJECTED
	if approved {
		newStatus = types.BOOKING_APPROVED
	}
	var booking models.Booking
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Booking{}).
			Joins("Item").
			Joins("Booker").
			Where(`bookings.id = ? AND "Item".owner_id = ?`, bookingId, ownerId).
			First(&booking).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("booking with id: %d for owner with id: %d was not found", bookingId, ownerId)
		}
		if err != nil {
			return err
		}
		// guarded update: the WAITING predicate makes a concurrent second
		// decision lose instead of overwriting the first
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", bookingId, types.BOOKING_WAITING).
			Update("status", newStatus)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.Conflict("booking with id: %d has already been decided", bookingId)
		}
		booking.Status = newStatus
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bookingToResponse(&booking), nil
}

// GetAllUserBookings filters bookings where the user is the booker, or with
// asOwner the owner of the booked item, by the requested state. Date states
// compare against one cur snapshot; WAITING/REJECTED match on status.
func GetAllUserBookings(userId uint, state types.State, asOwner bool, page types.PaginationQuery) ([]types.APIResponseBooking, error) {
	cur := time.Now()
	db := db.GetDb()
	if err := ensureUserExists(db, userId); err != nil {
		return nil, err
	}

	q := db.Model(&models.Booking{}).Joins("Item").Joins("Booker")
	if asOwner {
		q = q.Where(`"Item".owner_id = ?`, userId)
	} else {
		q = q.Where("bookings.booker_id = ?", userId)
	}
	switch state {
	case types.STATE_ALL:
	case types.STATE_CURRENT:
		q = q.Where("bookings.start_date <= ? AND bookings.end_date > ?", cur, cur)
	case types.STATE_PAST:
		q = q.Where("bookings.end_date < ?", cur)
	case types.STATE_FUTURE:
		q = q.Where("bookings.start_date > ?", cur)
	case types.STATE_WAITING, types.STATE_REJECTED:
		q = q.Scopes(scopes.WithStatus(types.BookingStatus(state)))
	default:
		return nil, apperrors.UnknownState(string(state))
	}

	var bookings []models.Booking
	if err := q.
		Order("bookings.start_date desc").
		Scopes(scopes.Paginate(page)).
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	out := make([]types.APIResponseBooking, 0, len(bookings))
	for i := range bookings {
		out = append(out, *bookingToResponse(&bookings[i]))
	}
	return out, nil
}
