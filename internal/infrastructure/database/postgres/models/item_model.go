package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Attributes is a string map persisted as a jsonb column.
type Attributes map[string]string

func (a Attributes) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *Attributes) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*a = Attributes{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported attributes type %T", value)
	}

	decoded := Attributes{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*a = decoded
	return nil
}

// ItemModel represents the database model for catalog items
type ItemModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ShopID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Shop        *ShopModel `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE"`
	SellerID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Kind        string     `gorm:"type:varchar(30);not null;index"`
	Name        string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text"`
	PriceCents  int64      `gorm:"type:bigint;not null;default:0"`
	Stock       int        `gorm:"type:integer;not null;default:0"`
	ImageRef    *string    `gorm:"type:varchar(500)"`
	Attributes  Attributes `gorm:"type:jsonb;not null;default:'{}'"`
	IsActive    bool       `gorm:"default:true;not null"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

func (ItemModel) TableName() string {
	return "items"
}
