package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	MembershipBronze = "bronze"
	MembershipSilver = "silver"
	MembershipGold   = "gold"

	PaymentStatusPending  = "pending"
	PaymentStatusComplete = "complete"
	PaymentStatusFailed   = "failed"

	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Collection struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title string `gorm:"not null"                 json:"title"`
}

type Product struct {
	ID           uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string          `gorm:"not null"                 json:"title"`
	Slug         string          `gorm:"index"                    json:"slug"`
	Description  string          `json:"description"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric;not null"    json:"unit_price"`
	Inventory    int             `gorm:"not null"                 json:"inventory"`
	CollectionID uint            `gorm:"index;not null"           json:"collection_id"`
	LastUpdate   time.Time       `gorm:"autoUpdateTime"           json:"last_update"`
}

func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = slug.Make(p.Title)
	}
	return nil
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint   `gorm:"index;not null"           json:"product_id"`
	Image     string `gorm:"not null"                 json:"image"`
}

type Review struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID   uint      `gorm:"index;not null"           json:"product_id"`
	Name        string    `gorm:"not null"                 json:"name"`
	Description string    `gorm:"not null"                 json:"description"`
	Date        time.Time `gorm:"autoCreateTime"           json:"date"`
}

// Cart is keyed by a random 128-bit token so cart ids are not guessable.
type Cart struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"        json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Items     []CartItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                        json:"id"`
	CartID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_product;not null" json:"cart_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_cart_product;not null"           json:"product_id"`
	Quantity  int       `gorm:"not null;check:quantity>0"                       json:"quantity"`
	Product   Product   `json:"product"`
}

type Customer struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint       `gorm:"uniqueIndex;not null"     json:"user_id"`
	Phone      string     `json:"phone"`
	BirthDate  *time.Time `json:"birth_date"`
	Membership string     `gorm:"not null;default:bronze"  json:"membership"`
}

type Order struct {
	ID            uint        `gorm:"primaryKey;autoIncrement"    json:"id"`
	CustomerID    uint        `gorm:"index;not null"              json:"customer_id"`
	PlacedAt      time.Time   `gorm:"autoCreateTime"              json:"placed_at"`
	PaymentStatus string      `gorm:"not null;default:pending"    json:"payment_status"`
	Items         []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// UnitPrice is copied from the product at checkout and never recomputed,
// so later price changes do not touch existing orders.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"  json:"id"`
	OrderID   uint            `gorm:"index;not null"            json:"order_id"`
	ProductID uint            `gorm:"index;not null"            json:"product_id"`
	UnitPrice decimal.Decimal `gorm:"type:numeric;not null"     json:"unit_price"`
	Quantity  int             `gorm:"not null;check:quantity>0" json:"quantity"`
	Product   Product         `json:"product"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	Role      string `gorm:"not null"        json:"role"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}
