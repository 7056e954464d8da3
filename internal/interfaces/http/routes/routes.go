// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tochayanroy/ecomapp-backend/internal/interfaces/http/handlers"
	"github.com/tochayanroy/ecomapp-backend/internal/interfaces/http/middleware"
	"github.com/tochayanroy/ecomapp-backend/internal/pkg/auth"
)

// Handlers bundles every handler the router needs
type Handlers struct {
	Auth      *handlers.AuthHandler
	Profile   *handlers.ProfileHandler
	Address   *handlers.AddressHandler
	Product   *handlers.ProductHandler
	Category  *handlers.CategoryHandler
	Banner    *handlers.BannerHandler
	Cart      *handlers.CartHandler
	Order     *handlers.OrderHandler
	Watchlist *handlers.WatchlistHandler
	Upload    *handlers.UploadHandler
	UserAdmin *handlers.UserAdminHandler
}

// SetupRoutes wires the versioned API surface
func SetupRoutes(router *gin.Engine, h *Handlers, jwtManager *auth.JWTManager) {
	v1 := router.Group("/api/v1")

	// Public endpoints
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/verify-otp", h.Auth.VerifyOTP)
		authGroup.POST("/resend-otp", h.Auth.ResendOTP)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.RefreshToken)
	}

	products := v1.Group("/products")
	{
		products.GET("", h.Product.ListProducts)
		products.GET("/:id", h.Product.GetProduct)
		products.GET("/slug/:slug", h.Product.GetProductBySlug)
	}

	categories := v1.Group("/categories")
	{
		categories.GET("", h.Category.ListCategories)
		categories.GET("/:id", h.Category.GetCategory)
	}

	v1.GET("/banners", h.Banner.ListActiveBanners)

	// Cart works for guests (session header) and logged-in users
	cartGroup := v1.Group("/cart")
	cartGroup.Use(middleware.OptionalAuthMiddleware(jwtManager))
	{
		cartGroup.GET("", h.Cart.GetCart)
		cartGroup.POST("/items", h.Cart.AddItem)
		cartGroup.PUT("/items/:productId", h.Cart.UpdateItem)
		cartGroup.DELETE("/items/:productId", h.Cart.RemoveItem)
		cartGroup.DELETE("", h.Cart.ClearCart)
	}

	// Authenticated endpoints
	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(jwtManager))
	{
		profile := authed.Group("/profile")
		{
			profile.GET("", h.Profile.GetProfile)
			profile.PUT("", h.Profile.UpdateProfile)
			profile.PUT("/password", h.Profile.ChangePassword)
		}

		addresses := authed.Group("/addresses")
		{
			addresses.GET("", h.Address.ListAddresses)
			addresses.POST("", h.Address.CreateAddress)
			addresses.GET("/:id", h.Address.GetAddress)
			addresses.PUT("/:id", h.Address.UpdateAddress)
			addresses.PUT("/:id/default", h.Address.SetDefaultAddress)
			addresses.DELETE("/:id", h.Address.DeleteAddress)
		}

		orders := authed.Group("/orders")
		{
			orders.POST("", h.Order.CreateOrder)
			orders.GET("", h.Order.ListOrders)
			orders.GET("/:id", h.Order.GetOrder)
			orders.PUT("/:id/cancel", h.Order.CancelOrder)
			orders.GET("/:id/invoice", h.Order.DownloadInvoice)
		}

		watchlistGroup := authed.Group("/watchlist")
		{
			watchlistGroup.GET("", h.Watchlist.GetWatchlist)
			watchlistGroup.POST("/:productId", h.Watchlist.ToggleItem)
			watchlistGroup.DELETE("/:productId", h.Watchlist.RemoveItem)
			watchlistGroup.DELETE("", h.Watchlist.ClearWatchlist)
		}
	}

	// Admin endpoints
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(jwtManager), middleware.AdminMiddleware())
	{
		admin.GET("/products", h.Product.ListAllProducts)
		admin.POST("/products", h.Product.CreateProduct)
		admin.PUT("/products/:id", h.Product.UpdateProduct)
		admin.PUT("/products/:id/inventory", h.Product.UpdateInventory)
		admin.DELETE("/products/:id", h.Product.DeleteProduct)

		admin.POST("/categories", h.Category.CreateCategory)
		admin.PUT("/categories/:id", h.Category.UpdateCategory)
		admin.DELETE("/categories/:id", h.Category.DeleteCategory)

		admin.GET("/banners", h.Banner.ListBanners)
		admin.POST("/banners", h.Banner.CreateBanner)
		admin.PUT("/banners/:id", h.Banner.UpdateBanner)
		admin.DELETE("/banners/:id", h.Banner.DeleteBanner)

		admin.GET("/orders", h.Order.AdminListOrders)
		admin.GET("/orders/:id", h.Order.AdminGetOrder)
		admin.PUT("/orders/:id/status", h.Order.AdminUpdateStatus)

		admin.GET("/users", h.UserAdmin.ListUsers)
		admin.GET("/users/:id", h.UserAdmin.GetUser)
		admin.PUT("/users/:id/active", h.UserAdmin.SetUserActive)

		admin.GET("/uploads", h.Upload.ListImages)
		admin.POST("/uploads", h.Upload.UploadImage)
		admin.DELETE("/uploads/:filename", h.Upload.DeleteImage)
	}
}
