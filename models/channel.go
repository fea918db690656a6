package models

import (
	"gorm.io/gorm"
)

type Channel struct {
	gorm.Model

	ChannelID   string `gorm:"uniqueIndex;size:64" json:"channelId"`
	Name        string `gorm:"size:128" json:"name"`
	Link        string `gorm:"size:255" json:"link"`
	ButtonText  string `gorm:"size:64" json:"buttonText"`
	Description string `gorm:"size:255" json:"description"`
	Position    int    `gorm:"index" json:"position"`
	// AutoAccept marks private channels the bot cannot query; membership
	// is assumed for them.
	AutoAccept bool `json:"autoAccept"`
	Enabled    bool `gorm:"default:true" json:"enabled"`
}
