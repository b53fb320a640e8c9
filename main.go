package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"interviewportal/cache"
	"interviewportal/config"
	"interviewportal/controllers"
	"interviewportal/database"
	"interviewportal/mailer"
	"interviewportal/middleware"
	"interviewportal/models"
	"interviewportal/zoom"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.MongoURI, cfg.DatabaseName)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			log.Printf("mongo disconnect: %v", err)
		}
	}()
	log.Println("MongoDB connected successfully")

	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatal(err)
	}

	redisClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	app := controllers.NewApp(
		database.NewUserStore(db),
		database.NewInterviewStore(db),
		database.NewResetTokenStore(db),
		mailer.New(cfg.Email),
		zoom.NewClient(cfg.Zoom, redisClient),
		cfg,
	)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = 10 << 20

	// Rate limiting ahead of everything else
	r.Use(middleware.RateLimit(redisClient, 100, 15*time.Minute))
	r.Use(func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 10<<20)
		c.Next()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "API endpoint not found",
		})
	})

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Server is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	protect := middleware.Protect(cfg.JWTSecret)
	staff := middleware.Authorize(models.RoleAdmin, models.RoleInterviewer)
	adminOnly := middleware.Authorize(models.RoleAdmin)

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", app.Register())
		auth.POST("/login", app.Login())
		auth.POST("/forgotpassword", app.ForgotPassword())
		auth.PUT("/resetpassword/:token", app.ResetPassword())
		auth.GET("/me", protect, app.GetMe())
		auth.PUT("/updatedetails", protect, app.UpdateDetails())
		auth.PUT("/updatepassword", protect, app.UpdatePassword())
	}

	interviews := r.Group("/api/interviews", protect)
	{
		interviews.GET("", app.GetInterviews())
		interviews.POST("", staff, app.CreateInterview())
		interviews.GET("/:id", app.GetInterview())
		interviews.PUT("/:id", staff, app.UpdateInterview())
		interviews.DELETE("/:id", adminOnly, app.DeleteInterview())
		interviews.POST("/:id/feedback", staff, app.SubmitFeedback())
		interviews.POST("/:id/resume", staff, app.UploadResume())
	}

	zoomRoutes := r.Group("/api/zoom", protect)
	{
		zoomRoutes.POST("/signature", app.GenerateSignature())
		zoomRoutes.POST("/create-meeting", staff, app.CreateMeeting())
	}

	log.Printf("Server is running on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
