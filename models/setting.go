package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Setting struct {
	gorm.Model

	Key   string         `gorm:"uniqueIndex;size:64" json:"key"`
	Value datatypes.JSON `gorm:"type:jsonb" json:"value"`
}
