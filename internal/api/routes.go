package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"homequest/server/internal/auth"
	"homequest/server/internal/models"
)

// SetupRoutes mounts the full API surface on router. Role gates follow the
// ownership model: admin-only surfaces (insight writes, deleted-property
// recovery) sit behind RequireRole, chat endpoints stay open to anonymous
// buyers via OptionalAuth.
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{h.cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.GET("/ws", func(c *gin.Context) {
		h.hub.HandleWS(c.Writer, c.Request)
	})

	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/profile", h.auth.RequireAuth(), h.Profile)
		authGroup.PATCH("/profile", h.auth.RequireAuth(), h.UpdateProfile)
	}

	propertyGroup := api.Group("/properties")
	{
		propertyGroup.GET("", h.ListProperties)
		propertyGroup.GET("/trending", h.TrendingProperties)
		propertyGroup.GET("/deleted/all", h.auth.RequireAuth(), auth.RequireRole(models.RoleAdmin), h.ListDeletedProperties)
		propertyGroup.GET("/:id", h.GetProperty)
		propertyGroup.POST("", h.auth.RequireAuth(), h.CreateProperty)
		propertyGroup.PATCH("/:id", h.auth.RequireAuth(), h.UpdateProperty)
		propertyGroup.DELETE("/:id", h.auth.RequireAuth(), h.DeleteProperty)
		propertyGroup.POST("/:id/recover", h.auth.RequireAuth(), auth.RequireRole(models.RoleAdmin), h.RecoverProperty)
	}

	insightGroup := api.Group("/insights")
	{
		insightGroup.GET("/cities", h.ListCityInsights)
		insightGroup.GET("/cities/:city", h.GetCityInsight)
		insightGroup.GET("/localities", h.ListLocalityInsights)
		insightGroup.GET("/societies", h.ListSocietyInsights)

		adminInsights := insightGroup.Group("", h.auth.RequireAuth(), auth.RequireRole(models.RoleAdmin))
		{
			adminInsights.POST("/cities", h.CreateCityInsight)
			adminInsights.POST("/localities", h.CreateLocalityInsight)
			adminInsights.PATCH("/cities/:id", h.UpdateCityInsight)
			adminInsights.PATCH("/localities/:id", h.UpdateLocalityInsight)
			adminInsights.DELETE("/cities/:id", h.DeleteCityInsight)
			adminInsights.DELETE("/localities/:id", h.DeleteLocalityInsight)
			adminInsights.GET("/:type/:id/history", h.InsightHistory)
			adminInsights.POST("/:type/:id/undo", h.UndoInsightChange)
		}
	}

	favoriteGroup := api.Group("/favorites", h.auth.RequireAuth())
	{
		favoriteGroup.POST("", h.AddFavorite)
		favoriteGroup.GET("", h.ListFavorites)
		favoriteGroup.DELETE("/:id", h.RemoveFavorite)
	}

	dealGroup := api.Group("/deals")
	{
		dealGroup.POST("/offers", h.CreateOffer)
		dealGroup.GET("/offers", h.auth.RequireAuth(), auth.RequireRole(models.RoleAgent, models.RoleAdmin), h.ListOffers)
		dealGroup.POST("", h.auth.RequireAuth(), h.CreateDeal)
		dealGroup.GET("", h.auth.RequireAuth(), h.ListDeals)
	}

	chatGroup := api.Group("/chats", h.auth.OptionalAuth())
	{
		chatGroup.POST("", h.CreateChat)
		chatGroup.GET("/:id", h.GetChat)
		chatGroup.POST("/:id/messages", h.PostChatMessage)
		chatGroup.POST("/:id/close", h.CloseChat)
	}

	paymentGroup := api.Group("/payments")
	{
		paymentGroup.POST("/transfer", h.BankTransfer)
	}
}
