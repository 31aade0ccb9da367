package routes

import (
	"net/http"

	"github.com/01moynul/travelsite/internal/handlers"
	"github.com/01moynul/travelsite/internal/logger"
	"github.com/01moynul/travelsite/internal/middleware"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware lets the storefront/admin UI at allowedOrigin call the API
// with credentials (the session cookie).
func CORSMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Allow only the configured frontend
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Vary", "Origin")

		// 2. Allow standard security credentials
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")

		// 3. Allow the headers we actually use
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, Range")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, Content-Range, Accept-Ranges")

		// 4. Allow the HTTP methods we use in our API
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// 5. Answer the preflight
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers, allowedOrigin string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinMiddleware(h.Log))

	// --- APPLY THE CORS GUARD ---
	router.Use(CORSMiddleware(allowedOrigin))

	requireSession := middleware.RequireSession(h.DB, h.Sessions, h.Log)
	maintenance := middleware.Maintenance(h.DB, h.Sessions)

	// --- Uploaded files (Range-capable) ---
	router.GET("/uploads/*path", h.ServeUpload)
	router.HEAD("/uploads/*path", h.ServeUpload)

	api := router.Group("/api")
	{
		// --- Ping Route (Public) ---
		api.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong"})
		})

		// --- Auth Routes ---
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", h.Login)
			authGroup.POST("/logout", h.Logout)
			authGroup.GET("/session", requireSession, h.GetSession)
			authGroup.PUT("/password", requireSession, h.ChangePassword)
		}

		// --- Products ---
		products := api.Group("/products")
		{
			products.GET("", maintenance, h.GetProducts)
			products.GET("/slug/:slug", maintenance, h.GetProductBySlug)
			products.GET("/export", requireSession, h.ExportProducts)
			products.GET("/:id", maintenance, h.GetProduct)
			products.POST("", requireSession, h.CreateProduct)
			products.PUT("/:id", requireSession, h.UpdateProduct)
			products.DELETE("/:id", requireSession, h.DeleteProduct)
		}

		productTypes := api.Group("/product-types")
		{
			productTypes.GET("", h.GetProductTypes)
			productTypes.GET("/:id", h.GetProductType)
			productTypes.POST("", requireSession, h.CreateProductType)
			productTypes.PUT("/:id", requireSession, h.UpdateProductType)
			productTypes.DELETE("/:id", requireSession, h.DeleteProductType)
		}

		// --- Blog ---
		blog := api.Group("/blog")
		{
			blog.GET("", maintenance, h.GetBlogs)
			blog.GET("/slug/:slug", maintenance, h.GetBlogBySlug)
			blog.GET("/:id", maintenance, h.GetBlog)
			blog.POST("", requireSession, h.CreateBlog)
			blog.PUT("/:id", requireSession, h.UpdateBlog)
			blog.DELETE("/:id", requireSession, h.DeleteBlog)
			blog.PATCH("/:id/publish", requireSession, h.PublishBlog)
			blog.PATCH("/:id/unpublish", requireSession, h.UnpublishBlog)
		}

		// --- Gallery ---
		gallery := api.Group("/gallery")
		{
			gallery.GET("", maintenance, h.GetGallery)
			gallery.GET("/:id", maintenance, h.GetGalleryItem)
			gallery.POST("", requireSession, h.CreateGalleryItem)
			gallery.PUT("/:id", requireSession, h.UpdateGalleryItem)
			gallery.DELETE("/:id", requireSession, h.DeleteGalleryItem)
		}

		// --- Hero ---
		hero := api.Group("/hero")
		{
			hero.GET("", h.GetActiveHero)
			hero.GET("/all", requireSession, h.GetHeroes)
			hero.GET("/:id", requireSession, h.GetHero)
			hero.POST("", requireSession, h.CreateHero)
			hero.PUT("/:id", requireSession, h.UpdateHero)
			hero.DELETE("/:id", requireSession, h.DeleteHero)

			hero.POST("/:id/buttons", requireSession, h.AddHeroButton)
			hero.PUT("/buttons/:buttonId", requireSession, h.UpdateHeroButton)
			hero.DELETE("/buttons/:buttonId", requireSession, h.DeleteHeroButton)

			hero.POST("/:id/stats", requireSession, h.AddHeroStat)
			hero.PUT("/stats/:statId", requireSession, h.UpdateHeroStat)
			hero.DELETE("/stats/:statId", requireSession, h.DeleteHeroStat)
		}

		// --- Partners ---
		partners := api.Group("/partners")
		{
			partners.GET("", h.GetPartners)
			partners.GET("/showcase", h.GetPartnerShowcase)
			partners.GET("/section", h.GetPartnerSection)
			partners.PUT("/section", requireSession, h.UpdatePartnerSection)
			partners.GET("/:id", h.GetPartner)
			partners.POST("", requireSession, h.CreatePartner)
			partners.PUT("/:id", requireSession, h.UpdatePartner)
			partners.DELETE("/:id", requireSession, h.DeletePartner)
		}

		// --- Social Media ---
		social := api.Group("/social-media")
		{
			social.GET("", h.GetSocialMedia)
			social.GET("/:id", h.GetSocialMediaItem)
			social.POST("", requireSession, h.CreateSocialMedia)
			social.PUT("/:id", requireSession, h.UpdateSocialMedia)
			social.DELETE("/:id", requireSession, h.DeleteSocialMedia)
		}

		// --- Settings ---
		api.GET("/settings", h.GetSettings)
		api.PUT("/settings", requireSession, h.UpdateSettings)

		// --- Media Library & Uploads ---
		api.POST("/upload", requireSession, h.UploadFile)
		media := api.Group("/media", requireSession)
		{
			media.GET("", h.GetMedia)
			media.POST("/upload", h.UploadMedia)
			media.PUT("/:id", h.UpdateMedia)
			media.DELETE("/:id", h.DeleteMedia)
		}

		// --- Visitors ---
		visitors := api.Group("/visitors")
		{
			visitors.POST("/track", h.TrackVisitor)
			visitors.GET("/stats", requireSession, h.GetVisitorStats)
			visitors.GET("/export", requireSession, h.ExportVisitors)
			visitors.GET("/live", requireSession, h.VisitorLive)
		}

		// --- Cart (Public) ---
		api.POST("/cart/quote", h.QuoteCart)

		// --- Admin Dashboard & Tools ---
		api.GET("/dashboard/stats", requireSession, h.GetDashboardStats)
		api.POST("/ai/describe", requireSession, h.Describe)
	}

	return router
}
