package models

import (
	"time"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"unique;not null"          json:"email"`
	Name         string `gorm:"not null"                 json:"name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}

// Store is the single-row shop profile shown on receipts and the
// profile screen.
type Store struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"not null"   json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type Product struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"not null"                 json:"name"`
	Category string `gorm:"index;not null"           json:"category"`
	Price    int64  `gorm:"not null"                 json:"price"`
	Stock    int    `gorm:"not null;check:stock>=0"  json:"stock"`
	Barcode  string `gorm:"uniqueIndex"              json:"barcode"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	Role      string `json:"role"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

// Sale is one settled checkout. Amounts are whole Rupiah; AmountPaid
// and ChangeDue are zero for non-cash methods.
type Sale struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Code          string     `gorm:"unique;not null"          json:"code"`
	UserID        uint       `gorm:"index;not null"           json:"user_id"`
	Total         int64      `gorm:"not null"                 json:"total"`
	PaymentMethod string     `gorm:"not null"                 json:"payment_method"`
	AmountPaid    int64      `json:"amount_paid"`
	ChangeDue     int64      `json:"change_due"`
	Status        string     `gorm:"not null"                 json:"status"`
	OccurredAt    time.Time  `gorm:"index;not null"           json:"occurred_at"`
	Items         []SaleItem `gorm:"foreignKey:SaleID"        json:"items"`
}

type SaleItem struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	SaleID      uint   `gorm:"index;not null"           json:"sale_id"`
	ProductID   uint   `gorm:"not null"                 json:"product_id"`
	ProductName string `gorm:"not null"                 json:"product_name"`
	Price       int64  `gorm:"not null"                 json:"price"`
	Quantity    int    `gorm:"not null"                 json:"quantity"`
	Subtotal    int64  `gorm:"not null"                 json:"subtotal"`
}

type Notification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"not null"                 json:"title"`
	Message   string    `gorm:"not null"                 json:"message"`
	Type      string    `gorm:"not null"                 json:"type"`
	Read      bool      `gorm:"default:false"            json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
