package models

import "shareit/src/types"

type Item struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Available   *bool  `json:"available,omitempty"`
	OwnerID     uint   `json:"owner_id,omitempty"`
	RequestID   *uint  `json:"request_id,omitempty"`

	Owner    *User        `gorm:"foreignKey:owner_id" json:"owner,omitempty"`
	Request  *RequestItem `gorm:"foreignKey:request_id" json:"request,omitempty"`
	Bookings []Booking    `gorm:"foreignKey:item_id" json:"bookings,omitempty"`
	Comments []Comment    `gorm:"foreignKey:item_id" json:"comments,omitempty"`

	types.Timestamps
}
