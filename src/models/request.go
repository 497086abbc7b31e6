package models

import "shareit/src/types"

// RequestItem is a "wanted" post: a user describes an item they wish existed,
// and items later listed in answer carry a back-reference to it.
type RequestItem struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Description string `json:"description,omitempty"`
	RequestorID uint   `json:"requestor_id,omitempty"`

	Requestor *User  `gorm:"foreignKey:requestor_id" json:"requestor,omitempty"`
	Items     []Item `gorm:"foreignKey:request_id" json:"items,omitempty"`

	types.Timestamps
}
