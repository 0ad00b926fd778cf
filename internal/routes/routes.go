package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/bellabath/storefront-api/internal/handlers"
	"github.com/bellabath/storefront-api/internal/middleware"
)

// SetupRouter wires every endpoint onto a gin engine. Reads are public;
// everything that mutates site state sits behind the admin bearer check.
func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	// Uploaded images are served straight off disk
	router.Static("/images", h.Cfg.ImagesDir)

	api := router.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/ribbons", h.GetRibbons)
		api.POST("/contact", h.SubmitContact)
		api.POST("/cache/clear", h.ClearCache)

		products := api.Group("/products")
		{
			products.GET("", h.GetProducts)
			products.GET("/category/:categoryId", h.GetProductsByCategory)
			products.GET("/public-category/:categoryId", h.GetProductsByPublicCategory)
			products.GET("/popular/bestsellers", h.GetBestsellers)
			products.GET("/popular/new-arrivals", h.GetNewArrivals)
			products.GET("/random-from-category/:categoryId", h.GetRandomFromCategory)
			products.GET("/document/:attachmentId", h.DownloadProductDocument)
			products.GET("/by-slug/:slug", h.GetProductBySlug)
			products.GET("/:id", h.GetProduct)
		}
		// The storefront uses the singular form for slug lookups
		api.GET("/product/by-slug/:slug", h.GetProductBySlug)

		categories := api.Group("/categories")
		{
			categories.GET("", h.GetCategories)
			categories.GET("/tree", h.GetCategoryTree)
			categories.GET("/public", h.GetPublicCategories)
			categories.GET("/public/tree", h.GetPublicCategoryTree)
		}
		api.GET("/public-categories", h.GetPublicCategories)
		api.GET("/public-categories/tree", h.GetPublicCategoryTree)

		api.GET("/search", h.SearchProducts)

		quotation := api.Group("/quotation")
		{
			quotation.POST("/submit", h.SubmitQuotation)
			quotation.GET("/status/:orderRef", h.GetQuotationStatus)
		}

		track := api.Group("/track")
		{
			track.GET("/search", h.TrackSearch)
			track.GET("/order/:orderId", h.TrackOrder)
			track.GET("/delivery/:deliveryId", h.TrackDelivery)
		}

		verify := api.Group("/verify")
		{
			verify.GET("/countries", h.GetCountries)
			verify.POST("/send-otp", h.SendOTP)
			verify.POST("/check-otp", h.CheckOTP)
			verify.GET("/status", h.GetVerifyStatus)
		}

		admin := api.Group("/admin")
		{
			// Public admin surface: config reads and login
			admin.GET("/config", h.GetSiteConfig)
			admin.POST("/login", h.AdminLogin)
			admin.GET("/category-images", h.GetCategoryImages)
			admin.GET("/hero-images", h.GetHeroImages)
			admin.GET("/hidden-categories", h.GetHiddenCategories)

			authed := admin.Group("")
			authed.Use(middleware.AdminAuth(h.Cfg.AdminPassword))
			{
				authed.PUT("/config", h.PutSiteConfig)
				authed.PATCH("/config/:section", h.PatchSiteConfigSection)
				authed.POST("/upload", h.UploadImage)

				authed.PUT("/category-images/:categoryId", h.PutCategoryImage)
				authed.DELETE("/category-images/:categoryId", h.DeleteCategoryImage)

				authed.PUT("/hero-images/:index", h.PutHeroImage)
				authed.DELETE("/hero-images/:index", h.DeleteHeroImage)

				authed.POST("/categories/:categoryId/toggle-visibility", h.ToggleCategoryVisibility)
			}
		}
	}

	return router
}
