// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"feria/internal/delivery/http/middleware"
	"feria/internal/delivery/http/router/handler"
	"feria/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	AdminHandler     *handler.AdminHandler
	CategoryHandler  *handler.CategoryHandler
	ListingHandler   *handler.ListingHandler
	MediaHandler     *handler.MediaHandler
	DiscoveryHandler *handler.DiscoveryHandler
	SitemapHandler   *handler.SitemapHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public discovery surfaces, no authentication
	e.GET("/", r.params.DiscoveryHandler.Home)
	e.GET("/buscar", r.params.DiscoveryHandler.Search)
	e.GET("/categorias", r.params.CategoryHandler.ListCategories)
	e.GET("/categoria/:slug", r.params.DiscoveryHandler.CategoryPage)
	e.GET("/publicacion/:id", r.params.DiscoveryHandler.ListingDetail)
	e.GET("/publicacion/:id/qr", r.params.DiscoveryHandler.ContactQR)
	e.GET("/sitemap.xml", r.params.SitemapHandler.Sitemap)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.params.AuthHandler.RegisterMerchant)
		authGroup.POST("/login", r.params.AuthHandler.Login)
		authGroup.POST("/login/idtoken", r.params.AuthHandler.LoginWithIDToken)
		authGroup.POST("/refresh", r.params.AuthHandler.RefreshToken)
		authGroup.POST("/logout", r.params.AuthHandler.Logout)
	}

	// Profile routes for any authenticated account
	profileGroup := e.Group("/profile")
	profileGroup.Use(r.params.AuthMiddleware.Authenticate)
	{
		profileGroup.GET("", r.params.AuthHandler.GetProfile)
		profileGroup.PUT("", r.params.AuthHandler.UpdateProfile)
	}

	// Merchant dashboard; admins pass too since the usecase layer lets them
	// act on any listing
	dashboardGroup := e.Group("/dashboard")
	dashboardGroup.Use(r.params.AuthMiddleware.Authenticate)
	{
		dashboardGroup.POST("/listings", r.params.ListingHandler.CreateListing)
		dashboardGroup.GET("/listings", r.params.ListingHandler.ListOwnListings)
		dashboardGroup.GET("/listings/:id", r.params.ListingHandler.GetOwnListing)
		dashboardGroup.PUT("/listings/:id", r.params.ListingHandler.UpdateListing)
		dashboardGroup.DELETE("/listings/:id", r.params.ListingHandler.DeleteListing)
		dashboardGroup.POST("/media/images", r.params.MediaHandler.UploadImages)
		dashboardGroup.DELETE("/media/assets", r.params.MediaHandler.DeleteAsset)
	}

	// Admin console, requires the admin role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.params.AuthMiddleware.Authenticate)
	adminGroup.Use(r.params.AuthMiddleware.RequireRole(entity.RoleAdmin.String()))
	{
		adminGroup.GET("/merchants/pending", r.params.AdminHandler.ListPendingMerchants)
		adminGroup.GET("/merchants", r.params.AdminHandler.ListMerchants)
		adminGroup.POST("/merchants/:id/approve", r.params.AdminHandler.ApproveMerchant)
		adminGroup.PATCH("/merchants/:id/active", r.params.AdminHandler.SetMerchantActive)

		// Full inventory; edits go through the dashboard listing routes,
		// which let admins touch any listing and set the promotion flags.
		adminGroup.GET("/listings", r.params.AdminHandler.ListListings)

		adminGroup.GET("/categories", r.params.CategoryHandler.AdminListCategories)
		adminGroup.POST("/categories", r.params.CategoryHandler.CreateCategory)
		adminGroup.PUT("/categories/:id", r.params.CategoryHandler.UpdateCategory)
		adminGroup.DELETE("/categories/:id", r.params.CategoryHandler.DeleteCategory)

		adminGroup.DELETE("/media/assets", r.params.MediaHandler.DeleteAsset)
	}
}
