package settings

import (
	"encoding/json"

	"earnbot/database"
	"earnbot/models"

	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// Settings is a point-in-time snapshot of the operational parameters.
// Fields map 1:1 onto rows of the settings table, keyed by the json tag.
type Settings struct {
	BotName       string  `json:"botName"`
	MinWithdraw   float64 `json:"minWithdraw"`
	MaxWithdraw   float64 `json:"maxWithdraw"`
	ReferBonus    float64 `json:"referBonus"`
	WelcomeBonus  float64 `json:"welcomeBonus"`
	WithdrawTax   float64 `json:"withdrawTax"`
	MinGiftAmount float64 `json:"minGiftAmount"`
	MaxGiftAmount float64 `json:"maxGiftAmount"`

	BotEnabled          bool `json:"botEnabled"`
	DeviceVerification  bool `json:"deviceVerification"`
	AutoWithdraw        bool `json:"autoWithdraw"`
	WithdrawalsEnabled  bool `json:"withdrawalsEnabled"`
	ChannelVerification bool `json:"channelVerification"`

	UpiEnabled bool   `json:"upiEnabled"`
	UpiID      string `json:"upiId"`
	UpiName    string `json:"upiName"`

	AdminIDs []int64 `json:"adminIds"`
}

func defaults() *Settings {
	return &Settings{
		BotName:             "Refer & Earn Bot",
		MinWithdraw:         50,
		MaxWithdraw:         10000,
		ReferBonus:          10,
		WelcomeBonus:        5,
		WithdrawTax:         5,
		MinGiftAmount:       10,
		MaxGiftAmount:       1000,
		BotEnabled:          true,
		DeviceVerification:  true,
		AutoWithdraw:        false,
		WithdrawalsEnabled:  true,
		ChannelVerification: true,
		UpiEnabled:          true,
		AdminIDs:            []int64{},
	}
}

// Load builds a snapshot from the settings table. Keys missing from the
// table keep their default values.
func Load() (*Settings, error) {
	var rows []models.Setting
	if err := database.DB.Find(&rows).Error; err != nil {
		return nil, err
	}

	raw := make(map[string]json.RawMessage, len(rows))
	for _, row := range rows {
		if len(row.Value) > 0 {
			raw[row.Key] = json.RawMessage(row.Value)
		}
	}

	blob, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}

	s := defaults()
	if err := json.Unmarshal(blob, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Save upserts the given keys. Unknown keys are stored as-is so new
// parameters can land before code that reads them.
func Save(values map[string]any) error {
	for key, value := range values {
		blob, err := json.Marshal(value)
		if err != nil {
			return err
		}
		err = database.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&models.Setting{Key: key, Value: datatypes.JSON(blob)}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// EnsureDefaults seeds missing settings rows without touching existing
// values.
func EnsureDefaults() error {
	blob, err := json.Marshal(defaults())
	if err != nil {
		return err
	}
	var pairs map[string]json.RawMessage
	if err := json.Unmarshal(blob, &pairs); err != nil {
		return err
	}

	for key, value := range pairs {
		err := database.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).Create(&models.Setting{Key: key, Value: datatypes.JSON(value)}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Settings) IsAdmin(userID int64) bool {
	for _, id := range s.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Public is the settings view exposed to the mini-app. The admin list and
// payout credentials stay server-side.
func (s *Settings) Public() map[string]any {
	return map[string]any{
		"botName":             s.BotName,
		"minWithdraw":         s.MinWithdraw,
		"maxWithdraw":         s.MaxWithdraw,
		"referBonus":          s.ReferBonus,
		"welcomeBonus":        s.WelcomeBonus,
		"withdrawTax":         s.WithdrawTax,
		"withdrawalsEnabled":  s.WithdrawalsEnabled,
		"channelVerification": s.ChannelVerification,
	}
}
