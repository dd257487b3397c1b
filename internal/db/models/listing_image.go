package models

import "gorm.io/gorm"

// ListingImage represents a stored image attached to a listing. The image
// bytes live in object storage under ObjectKey; only metadata is kept here.
type ListingImage struct {
	gorm.Model
	ListingID uint   `json:"listing_id" gorm:"not null;index"`
	ObjectKey string `json:"-" gorm:"not null"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	IsHidden  bool   `json:"is_hidden" gorm:"index"`
}
