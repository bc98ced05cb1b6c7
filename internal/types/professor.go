package types

import (
	"time"

	"github.com/google/uuid"
)

// Professor is the 1:1 extension row created alongside a user registered
// with the professor role.
type Professor struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User           *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Bio            string    `gorm:"column:bio" json:"bio"`
	Specialization string    `gorm:"column:specialization" json:"specialization"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

func (Professor) TableName() string { return "professors" }
