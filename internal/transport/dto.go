package transport

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/internal/models"
)

type CollectionRequest struct {
	Title string `json:"title"`
}

type ProductRequest struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Inventory    int             `json:"inventory"`
	CollectionID uint            `json:"collection_id"`
}

type ReviewRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ImageRequest struct {
	Image string `json:"image"`
}

type AddCartItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CreateOrderRequest struct {
	CartID uuid.UUID `json:"cart_id"`
}

type UpdateOrderRequest struct {
	PaymentStatus string `json:"payment_status"`
}

type UpdateCustomerRequest struct {
	Phone     string     `json:"phone"`
	BirthDate *time.Time `json:"birth_date"`
}

type UpdateMembershipRequest struct {
	Membership string `json:"membership"`
}

type ClearInventoryRequest struct {
	IDs []uint `json:"ids"`
}

type NotifyRequest struct {
	Message string `json:"message"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SimpleProduct struct {
	ID        uint            `json:"id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func NewSimpleProduct(p models.Product) SimpleProduct {
	return SimpleProduct{ID: p.ID, Title: p.Title, UnitPrice: p.UnitPrice}
}

type CartItemResponse struct {
	ID         uint            `json:"id"`
	Product    SimpleProduct   `json:"product"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// NewCartItemResponse prices a cart line off the current product price. Carts
// are live documents; prices freeze only when an order is placed.
func NewCartItemResponse(item models.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:         item.ID,
		Product:    NewSimpleProduct(item.Product),
		Quantity:   item.Quantity,
		TotalPrice: item.Product.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
	}
}

type CartResponse struct {
	ID         uuid.UUID          `json:"id"`
	Items      []CartItemResponse `json:"items"`
	TotalPrice decimal.Decimal    `json:"total_price"`
}

func NewCartResponse(cart *models.Cart, items []models.CartItem) CartResponse {
	resp := CartResponse{
		ID:         cart.ID,
		Items:      make([]CartItemResponse, 0, len(items)),
		TotalPrice: decimal.Zero,
	}
	for _, item := range items {
		line := NewCartItemResponse(item)
		resp.Items = append(resp.Items, line)
		resp.TotalPrice = resp.TotalPrice.Add(line.TotalPrice)
	}
	return resp
}

type OrderItemResponse struct {
	ID        uint            `json:"id"`
	Product   SimpleProduct   `json:"product"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

type OrderResponse struct {
	ID            uint                `json:"id"`
	CustomerID    uint                `json:"customer_id"`
	PlacedAt      time.Time           `json:"placed_at"`
	PaymentStatus string              `json:"payment_status"`
	Items         []OrderItemResponse `json:"items"`
}

func NewOrderResponse(order *models.Order) OrderResponse {
	resp := OrderResponse{
		ID:            order.ID,
		CustomerID:    order.CustomerID,
		PlacedAt:      order.PlacedAt,
		PaymentStatus: order.PaymentStatus,
		Items:         make([]OrderItemResponse, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:        item.ID,
			Product:   NewSimpleProduct(item.Product),
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return resp
}
