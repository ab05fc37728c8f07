package httpserver

import (
	"github.com/labstack/echo/v4"
)

type Deps struct {
	Auth     *AuthHTTP
	Catalog  *CatalogHTTP
	Cart     *CartHTTP
	Order    *OrderHTTP
	Customer *CustomerHTTP
	Notify   *NotifyHTTP
	Search   *SearchHTTP

	JWTSecret []byte
	// ProductCache, when set, caches the product list response. Applied to
	// that one endpoint only.
	ProductCache echo.MiddlewareFunc
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	requireLogin := RequireLogin(d.JWTSecret)

	auth := e.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/refresh", d.Auth.Refresh)
	auth.POST("/logout", d.Auth.Logout)

	store := e.Group("/store")

	// Catalog reads are public; mutations are admin only.
	store.GET("/collections", d.Catalog.ListCollections)
	store.GET("/collections/:id", d.Catalog.GetCollection)
	store.POST("/collections", d.Catalog.CreateCollection, requireLogin, AdminOnly)
	store.PUT("/collections/:id", d.Catalog.UpdateCollection, requireLogin, AdminOnly)
	store.DELETE("/collections/:id", d.Catalog.DeleteCollection, requireLogin, AdminOnly)

	if d.ProductCache != nil {
		store.GET("/products", d.Catalog.ListProducts, d.ProductCache)
	} else {
		store.GET("/products", d.Catalog.ListProducts)
	}
	store.GET("/products/:id", d.Catalog.GetProduct)
	store.POST("/products", d.Catalog.CreateProduct, requireLogin, AdminOnly)
	store.PUT("/products/:id", d.Catalog.UpdateProduct, requireLogin, AdminOnly)
	store.DELETE("/products/:id", d.Catalog.DeleteProduct, requireLogin, AdminOnly)

	store.GET("/products/:productID/reviews", d.Catalog.ListReviews)
	store.POST("/products/:productID/reviews", d.Catalog.CreateReview)
	store.PUT("/products/:productID/reviews/:id", d.Catalog.UpdateReview)
	store.DELETE("/products/:productID/reviews/:id", d.Catalog.DeleteReview)

	store.GET("/products/:productID/images", d.Catalog.ListImages)
	store.POST("/products/:productID/images", d.Catalog.AddImage, requireLogin, AdminOnly)
	store.DELETE("/products/:productID/images/:id", d.Catalog.DeleteImage, requireLogin, AdminOnly)

	// Carts are pre-checkout and anonymous; possession of the opaque cart id
	// is the credential.
	store.POST("/carts", d.Cart.CreateCart)
	store.GET("/carts/:cartID", d.Cart.GetCart)
	store.DELETE("/carts/:cartID", d.Cart.DeleteCart)
	store.POST("/carts/:cartID/items", d.Cart.AddItem)
	store.PATCH("/carts/:cartID/items/:itemID", d.Cart.UpdateItem)
	store.DELETE("/carts/:cartID/items/:itemID", d.Cart.RemoveItem)

	orders := store.Group("/orders", requireLogin)
	orders.POST("", d.Order.CreateOrder)
	orders.GET("", d.Order.ListOrders)
	orders.GET("/:id", d.Order.GetOrder)
	orders.PATCH("/:id", d.Order.UpdateOrder, AdminOnly)
	orders.DELETE("/:id", d.Order.DeleteOrder, AdminOnly)

	store.GET("/customers", d.Customer.ListCustomers, requireLogin, AdminOnly)
	store.GET("/customers/me", d.Customer.Me, requireLogin)
	store.PUT("/customers/me", d.Customer.UpdateMe, requireLogin)
	store.PATCH("/customers/:id", d.Customer.UpdateMembership, requireLogin, AdminOnly)

	admin := store.Group("/admin", requireLogin, AdminOnly)
	admin.POST("/products/clear-inventory", d.Catalog.ClearInventory)
	if d.Notify != nil {
		admin.POST("/notify", d.Notify.Notify)
	}

	if d.Search != nil {
		store.GET("/search", d.Search.Search)
	}
}
