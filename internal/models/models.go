package models

import (
	"time"
)

// Order lifecycle statuses. The server is the only writer; clients may
// request a transition but the stored value is what they get back.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusPreparing = "PREPARING"
	OrderStatusReady     = "READY"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

var OrderStatuses = map[string]bool{
	OrderStatusPending:   true,
	OrderStatusConfirmed: true,
	OrderStatusPreparing: true,
	OrderStatusReady:     true,
	OrderStatusDelivered: true,
	OrderStatusCancelled: true,
}

const (
	InquiryStatusNew      = "NEW"
	InquiryStatusResolved = "RESOLVED"
	InquiryStatusReopened = "REOPENED"
)

// Review moderation is a backend-owned tri-state.
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

var ReviewStatuses = map[string]bool{
	ReviewStatusPending:  true,
	ReviewStatusApproved: true,
	ReviewStatusRejected: true,
}

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null;index"           json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null"                 json:"price"`
	Available   bool      `gorm:"default:true"             json:"available"`
	Featured    bool      `gorm:"default:false"            json:"featured"`
	ImageURL    string    `json:"image_url"`
	CategoryID  uint      `gorm:"index"                    json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Order struct {
	ID              uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerName    string      `gorm:"not null"                 json:"customer_name"`
	CustomerEmail   string      `gorm:"not null"                 json:"customer_email"`
	CustomerPhone   string      `json:"customer_phone"`
	DeliveryAddress string      `json:"delivery_address"`
	DeliveryDate    string      `json:"delivery_date"`
	Status          string      `gorm:"not null;index"           json:"status"`
	Total           float64     `gorm:"not null"                 json:"total"`
	Items           []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID      uint    `gorm:"index;not null"           json:"order_id"`
	ProductID    uint    `gorm:"not null"                 json:"product_id"`
	ProductName  string  `gorm:"not null"                 json:"product_name"`
	Quantity     uint    `gorm:"default:1;check:quantity>0" json:"quantity"`
	UnitPrice    float64 `gorm:"not null"                 json:"unit_price"`
	LineTotal    float64 `gorm:"not null"                 json:"line_total"`
	Instructions string  `json:"instructions"`
}

type Inquiry struct {
	ID          uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string       `gorm:"not null"                 json:"name"`
	Email       string       `gorm:"not null"                 json:"email"`
	Phone       string       `json:"phone"`
	Subject     string       `json:"subject"`
	Message     string       `gorm:"not null"                 json:"message"`
	Status      string       `gorm:"not null;index"           json:"status"`
	ReplyText   string       `json:"reply_text"`
	CategoryID  uint         `gorm:"index"                    json:"inquiry_category_id"`
	Attachments []Attachment `gorm:"constraint:OnDelete:CASCADE" json:"attachments,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type Attachment struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	InquiryID   uint      `gorm:"index;not null"           json:"inquiry_id"`
	FileName    string    `gorm:"not null"                 json:"file_name"`
	Size        int64     `gorm:"not null"                 json:"size"`
	ContentType string    `json:"content_type"`
	StoragePath string    `json:"-"`
	DownloadURL string    `json:"download_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"index;not null"           json:"product_id"`
	Name      string    `json:"name"`
	Email     string    `gorm:"not null"                 json:"email"`
	Rating    int       `gorm:"not null;check:rating BETWEEN 1 AND 5" json:"rating"`
	Comment   string    `json:"comment"`
	Status    string    `gorm:"not null;index;default:pending" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AdminUser struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
}
