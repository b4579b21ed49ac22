package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ovenbird/bakehouse/internal/handlers"
	"github.com/ovenbird/bakehouse/internal/jwtmiddleware"
)

type Deps struct {
	DB                *gorm.DB
	JWTSecret         []byte
	AuthHandler       *handlers.AuthHandler
	ProductHandler    *handlers.ProductHandler
	CategoryHandler   *handlers.CategoryHandler
	OrderHandler      *handlers.OrderHandler
	InquiryHandler    *handlers.InquiryHandler
	AttachmentHandler *handlers.AttachmentHandler
	ReviewHandler     *handlers.ReviewHandler
	SearchHandler     *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	// storefront
	v1.GET("/products", d.ProductHandler.GetProducts)
	v1.GET("/products/search", d.SearchHandler.Search)
	v1.GET("/products/:id", d.ProductHandler.GetProduct)
	v1.GET("/categories", d.CategoryHandler.GetCategories)
	v1.POST("/orders", d.OrderHandler.CreateOrder)
	v1.POST("/inquiries", d.InquiryHandler.CreateInquiry)
	v1.POST("/products/:id/reviews", d.ReviewHandler.CreateReview)
	v1.GET("/products/:id/reviews", d.ReviewHandler.GetProductReviews)
	v1.GET("/products/:id/reviews/stats", d.ReviewHandler.GetProductReviewStats)

	v1.POST("/admin/login", d.AuthHandler.Login)

	admin := v1.Group("/admin", jwtmiddleware.Admin(d.JWTSecret))

	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PUT("/products/:id", d.ProductHandler.UpdateProduct)
	admin.PATCH("/products/:id/availability", d.ProductHandler.SetAvailability)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)

	admin.POST("/categories", d.CategoryHandler.CreateCategory)
	admin.PUT("/categories/:id", d.CategoryHandler.UpdateCategory)
	admin.DELETE("/categories/:id", d.CategoryHandler.DeleteCategory)

	admin.GET("/orders", d.OrderHandler.GetOrders)
	admin.GET("/orders/paginated", d.OrderHandler.GetOrdersPaginated)
	admin.GET("/orders/:id", d.OrderHandler.GetOrder)
	admin.PATCH("/orders/:id/status", d.OrderHandler.UpdateStatus)

	admin.GET("/inquiries", d.InquiryHandler.GetInquiriesPaginated)
	admin.GET("/inquiries/search", d.InquiryHandler.SearchInquiries)
	admin.GET("/inquiries/:id", d.InquiryHandler.GetInquiry)
	admin.POST("/inquiries/:id/reply", d.InquiryHandler.Reply)
	admin.POST("/inquiries/:id/resolve", d.InquiryHandler.Resolve)
	admin.POST("/inquiries/:id/reopen", d.InquiryHandler.Reopen)
	admin.DELETE("/inquiries/:id", d.InquiryHandler.DeleteInquiry)

	admin.POST("/inquiries/:id/attachments", d.AttachmentHandler.Upload)
	admin.GET("/inquiries/:id/attachments", d.AttachmentHandler.List)
	admin.GET("/inquiries/:id/attachments/stats", d.AttachmentHandler.Stats)
	admin.DELETE("/inquiries/:id/attachments", d.AttachmentHandler.DeleteAll)
	admin.GET("/attachments/:id/download", d.AttachmentHandler.Download)
	admin.DELETE("/attachments/:id", d.AttachmentHandler.Delete)

	admin.GET("/products/:id/reviews", d.ReviewHandler.GetProductReviewQueue)
	admin.GET("/reviews", d.ReviewHandler.ListReviews)
	admin.GET("/reviews/stats", d.ReviewHandler.ModerationStats)
	admin.PATCH("/reviews/:id/status", d.ReviewHandler.SetStatus)
	admin.DELETE("/reviews/:id", d.ReviewHandler.DeleteReview)
}
