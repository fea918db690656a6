package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	UserID         int64          `gorm:"uniqueIndex" json:"userId"`
	FullName       string         `gorm:"size:128" json:"fullName"`
	Username       string         `gorm:"size:64" json:"username"`
	Balance        float64        `json:"balance"`
	ReferCode      string         `gorm:"uniqueIndex;size:12" json:"referCode"`
	ReferredBy     *int64         `gorm:"index" json:"referredBy"`
	Verified       bool           `gorm:"default:false" json:"verified"`
	JoinedChannels datatypes.JSON `gorm:"type:jsonb" json:"joinedChannels"`
	DeviceID       string         `gorm:"index;size:64" json:"-"`
}

// JoinedChannelIDs decodes the joined-channel set. A missing or malformed
// blob reads as empty rather than failing the caller.
func (u *User) JoinedChannelIDs() []string {
	var ids []string
	if len(u.JoinedChannels) == 0 {
		return ids
	}
	_ = json.Unmarshal(u.JoinedChannels, &ids)
	return ids
}

func (u *User) HasJoined(channelID string) bool {
	for _, id := range u.JoinedChannelIDs() {
		if id == channelID {
			return true
		}
	}
	return false
}

// AddJoinedChannel adds channelID to the set and reports whether the set
// changed.
func (u *User) AddJoinedChannel(channelID string) bool {
	if u.HasJoined(channelID) {
		return false
	}
	ids := append(u.JoinedChannelIDs(), channelID)
	blob, err := json.Marshal(ids)
	if err != nil {
		return false
	}
	u.JoinedChannels = datatypes.JSON(blob)
	return true
}
