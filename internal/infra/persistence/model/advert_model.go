package model

import (
	"time"

	"github.com/google/uuid"
)

// AdvertModel mirrors the 'adverts' table. The (owner_id, title) index backs the
// duplicate-title lookup; it is not unique.
type AdvertModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title       string     `gorm:"type:varchar(255);not null;index:idx_adverts_owner_title,priority:2"`
	Description string     `gorm:"type:text;not null"`
	Category    string     `gorm:"type:varchar(100);not null"`
	Price       float64    `gorm:"type:double precision;not null;check:chk_adverts_price,price >= 0"`
	Flyer       string     `gorm:"type:text;not null"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_adverts_owner_title,priority:1"`
	Owner       *UserModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time  `gorm:"index"`
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (AdvertModel) TableName() string {
	return "adverts"
}
