package client

// Client-side views of the wire entities. These are snapshots of server
// state; a failed mutation means revert or refetch, never local patching.

type Order struct {
	ID              uint        `json:"id"`
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerPhone   string      `json:"customer_phone"`
	DeliveryAddress string      `json:"delivery_address"`
	DeliveryDate    string      `json:"delivery_date"`
	Status          string      `json:"status"`
	Total           float64     `json:"total"`
	Items           []OrderItem `json:"items"`
}

type OrderItem struct {
	ID           uint    `json:"id"`
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Quantity     uint    `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	LineTotal    float64 `json:"line_total"`
	Instructions string  `json:"instructions"`
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

type OrderPage struct {
	Orders []Order
	Meta   PageMeta
}

type Product struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Available   bool    `json:"available"`
	Featured    bool    `json:"featured"`
	ImageURL    string  `json:"image_url"`
	CategoryID  uint    `json:"category_id"`
}

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Inquiry renames the wire field inquiry_category_id to the plain CategoryID
// the screens use.
type Inquiry struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Subject     string       `json:"subject"`
	Message     string       `json:"message"`
	Status      string       `json:"status"`
	ReplyText   string       `json:"reply_text"`
	CategoryID  uint         `json:"inquiry_category_id"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type InquiryPage struct {
	Inquiries []Inquiry
	Meta      PageMeta
}

type Attachment struct {
	ID          uint   `json:"id"`
	InquiryID   uint   `json:"inquiry_id"`
	FileName    string `json:"file_name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	DownloadURL string `json:"download_url"`
}

type AttachmentStats struct {
	Count      int64 `json:"count"`
	TotalBytes int64 `json:"total_bytes"`
}

type Review struct {
	ID        uint   `json:"id"`
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	Status    string `json:"status"`
}

type ReviewStats struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

type ProductReviewStats struct {
	Count   int64   `json:"count"`
	Average float64 `json:"average"`
}
