// Package model contains the GORM-specific persistence structs.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel is the GORM-specific struct for the 'users' table.
// Latitude/Longitude are always written as a pair; LocationKnown
// disambiguates the (0, 0) default from a genuine fix there.
type UserModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Username      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_username"`
	PasswordHash  string    `gorm:"type:varchar(255);not null"`
	Latitude      float32   `gorm:"type:real;not null;default:0"`
	Longitude     float32   `gorm:"type:real;not null;default:0"`
	LocationKnown bool      `gorm:"not null;default:false"`
	RealName      *string   `gorm:"type:varchar(255)"`
	Bio           *string   `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
