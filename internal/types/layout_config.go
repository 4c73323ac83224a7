package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LayoutConfig is the one JSON document per user holding all of that user's
// admin layout customizations (app order, model order, display columns).
// The document has no identity beyond its owner and is deleted with them.
type LayoutConfig struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Config    datatypes.JSON `gorm:"not null;default:'{}';column:config" json:"config"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (LayoutConfig) TableName() string {
	return "layout_config"
}
