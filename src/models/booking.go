package models

import (
	"shareit/src/types"
	"time"
)

type Booking struct {
	ID        uint                `gorm:"primarykey" json:"id"`
	StartDate time.Time           `gorm:"column:start_date" json:"start"`
	EndDate   time.Time           `gorm:"column:end_date" json:"end"`
	Status    types.BookingStatus `gorm:"default:'WAITING'" json:"status,omitempty"`
	ItemID    uint                `json:"item_id,omitempty"`
	BookerID  uint                `json:"booker_id,omitempty"`

	Item   *Item `gorm:"foreignKey:item_id" json:"item,omitempty"`
	Booker *User `gorm:"foreignKey:booker_id" json:"booker,omitempty"`

	types.Timestamps
}
