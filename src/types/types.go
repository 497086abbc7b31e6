package types

import (
	"time"
)

type Timestamps struct {
	CreatedAt time.Time `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
}

type BookingStatus string

const (
	BOOKING_WAITING  BookingStatus = "WAITING"
	BOOKING_APPROVED BookingStatus = "APPROVED"
	BOOKING_REJECTED BookingStatus = "REJECTED"
	BOOKING_CANCELED BookingStatus = "CANCELED"
)

// State is the client-supplied filter over a user's bookings. It is a closed
// set; anything else must surface as a client error, never fall back to ALL.
type State string

const (
	STATE_ALL      State = "ALL"
	STATE_CURRENT  State = "CURRENT"
	STATE_PAST     State = "PAST"
	STATE_FUTURE   State = "FUTURE"
	STATE_WAITING  State = "WAITING"
	STATE_REJECTED State = "REJECTED"
)

func ParseState(s string) (State, bool) {
	switch State(s) {
	case STATE_ALL, STATE_CURRENT, STATE_PAST, STATE_FUTURE, STATE_WAITING, STATE_REJECTED:
		return State(s), true
	}
	return "", false
}

type CreateUserRequestBody struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type UpdateUserRequestBody struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
}

type CreateItemRequestBody struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *uint  `json:"request_id,omitempty"`
}

type UpdateItemRequestBody struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

type CreateBookingRequestBody struct {
	ItemID uint   `json:"item_id" binding:"required"`
	Start  string `json:"start" binding:"required,bookabledate" time_format:"2006-01-02 15:04:05 -07:00"`
	End    string `json:"end" binding:"required,bookabledate,gtdate=Start" time_format:"2006-01-02 15:04:05 -07:00"`
}

type CreateCommentRequestBody struct {
	Text string `json:"text" binding:"required"`
}

type CreateRequestRequestBody struct {
	Description string `json:"description" binding:"required"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

// PaginationQuery carries the from/size window. The binding bounds must not
// be relaxed with omitempty: an explicit size=0 would slip through and divide
// by zero in Page.
type PaginationQuery struct {
	From int `form:"from,default=0" binding:"gte=0"`
	Size int `form:"size,default=10" binding:"gt=0"`
}

// Page converts the raw offset to a zero-based page index. The truncating
// division means a from that is not a multiple of size rounds down to a page
// boundary; callers have always relied on that.
func (p PaginationQuery) Page() int {
	if p.From > 0 {
		return p.From / p.Size
	}
	return 0
}

func (p PaginationQuery) Offset() int {
	return p.Page() * p.Size
}

type APIResponseUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type APIResponseUserShort struct {
	ID   uint   `json:"id"`
	Name string `json:"name,omitempty"`
}

type APIResponseItemShort struct {
	ID   uint   `json:"id"`
	Name string `json:"name,omitempty"`
}

// APIResponseBookingShort is the projection attached to an item for its
// owner's view; enough to see who holds the nearest bookings.
type APIResponseBookingShort struct {
	ID       uint      `json:"id"`
	BookerID uint      `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type APIResponseComment struct {
	ID         uint      `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	Created    time.Time `json:"created"`
}

type APIResponseItem struct {
	ID          uint   `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Available   *bool  `json:"available,omitempty"`
	RequestID   *uint  `json:"request_id,omitempty"`

	LastBooking *APIResponseBookingShort `json:"last_booking"`
	NextBooking *APIResponseBookingShort `json:"next_booking"`
	Comments    []APIResponseComment     `json:"comments"`
}

type APIResponseBooking struct {
	ID     uint          `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Status BookingStatus `json:"status"`

	Item   *APIResponseItemShort `json:"item,omitempty"`
	Booker *APIResponseUserShort `json:"booker,omitempty"`
}

// APIResponseItemAnswer is an item listed in answer to a request.
type APIResponseItemAnswer struct {
	ID          uint   `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Available   *bool  `json:"available,omitempty"`
	RequestID   *uint  `json:"request_id,omitempty"`
}

type APIResponseRequest struct {
	ID          uint      `json:"id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`

	Items []APIResponseItemAnswer `json:"items"`
}
