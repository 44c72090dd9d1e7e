package routes

import (
	"os"

	"hvacquote-backend/config"
	"hvacquote-backend/controllers"
	"hvacquote-backend/services"
	"hvacquote-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origin := os.Getenv("APP_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
		auth.POST("/logout", controllers.Logout)
	}

	draftStore := services.NewDraftStore()
	quoteService := services.NewQuoteService(config.DB, draftStore)
	draftController := controllers.DraftController{Store: draftStore}
	quoteController := controllers.QuoteController{Service: quoteService}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Draft routes: the editable quote being built
		draft := api.Group("/draft")
		{
			draft.GET("", draftController.GetDraft)
			draft.DELETE("", draftController.ResetDraft)
			draft.POST("/items", draftController.AddItem)
			draft.PUT("/items/:index", draftController.UpdateItem)
			draft.DELETE("/items/:index", draftController.RemoveItem)
			draft.PUT("/client", draftController.UpdateClient)
			draft.PUT("/fee", draftController.UpdateFee)
			draft.POST("/calculate", draftController.Calculate)
		}

		// Quote routes: preview, save, history
		quotes := api.Group("/quotes")
		{
			quotes.POST("/preview", quoteController.PreviewQuote)
			quotes.POST("", quoteController.CreateQuote)
			quotes.GET("", quoteController.GetQuotes)
			quotes.GET("/:id", quoteController.GetQuote)
			quotes.GET("/:id/pdf", quoteController.GetQuotePDF)
		}
	}

	return r
}
