package app

import (
	"net/http"
	"time"

	"revhub/internal/config"
	"revhub/internal/middleware"
	"revhub/internal/model"
	"revhub/internal/repository"
	"revhub/internal/service"
	"revhub/internal/util"
	"revhub/internal/websocket"
	"revhub/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	util.RegisterValidators()

	r := gin.Default()
	r.Use(corsMiddleware(cfg.ClientURL))

	if cfg.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		r.Use(rateLimiter.Middleware())
		logger.Infof("rate limiting enabled: %d req/sec, burst %d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	db, err := initDB(cfg)
	if err != nil {
		panic("failed to connect to database: " + err.Error())
	}

	engagementKinds := model.Kinds(
		cfg.Points.ReviewLiked,
		cfg.Points.QuestionUpvote,
		cfg.Points.CommentLiked,
		cfg.Points.AnswerLiked,
	)
	questionKinds := model.QuestionKinds(cfg.Points.AnswerAccepted)

	if err := migrate(db, engagementKinds, questionKinds); err != nil {
		panic("failed to migrate database: " + err.Error())
	}

	redisClient := initRedisWithRetry(cfg)
	rabbitMQ := initRabbitMQWithRetry(cfg)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	targetRepo := repository.NewTargetRepository(db, redisClient)
	ledgerRepo := repository.NewLedgerRepository(db, redisClient)
	deltaRepo := repository.NewDeltaRepository(db)
	syncRepo := repository.NewSyncCheckpointRepository(db, redisClient)
	pointsRepo := repository.NewPointsRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()
	logger.Info("websocket hub started")

	// Cloudinary is optional; uploads are disabled without credentials.
	var cloudinaryClient *util.CloudinaryClient
	if cfg.CloudinaryCloudName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		cloudinaryClient, err = util.NewCloudinaryClient(cfg)
		if err != nil {
			logger.Warnf("failed to initialize cloudinary, image uploads disabled: %v", err)
			cloudinaryClient = nil
		}
	} else {
		logger.Info("cloudinary credentials not configured, image uploads disabled")
	}

	// Services
	notificationService := service.NewNotificationService(notificationRepo, rabbitMQ)
	notificationService.SetWSHub(wsHub)

	if rabbitMQ != nil {
		notificationWorker := service.NewNotificationWorker(rabbitMQ, wsHub)
		if err := notificationWorker.Start(); err != nil {
			logger.Warnf("failed to start notification worker: %v", err)
		} else {
			logger.Info("notification worker started")
		}
	}

	competitionChecker := service.NewRedisCompetitionChecker(redisClient, cfg.CompetitionKey)
	pointsService := service.NewPointsService(pointsRepo, competitionChecker)
	engagementService := service.NewEngagementService(targetRepo, ledgerRepo, syncRepo, pointsService, notificationService)
	acceptanceService := service.NewAcceptanceService(questionRepo, deltaRepo, syncRepo, pointsService, notificationService)
	aiService := service.NewAIService(cfg, userRepo, reviewRepo, redisClient)
	syncService := service.NewSyncService(syncRepo, userRepo)
	reviewService := service.NewReviewService(reviewRepo, commentRepo, catalogRepo, aiService, notificationService)
	questionService := service.NewQuestionService(questionRepo, catalogRepo, questionKinds, notificationService)
	authService := service.NewAuthService(userRepo, cfg)

	// Handlers
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userRepo, cloudinaryClient)
	catalogHandler := NewCatalogHandler(catalogRepo, cloudinaryClient)
	engagementHandler := NewEngagementHandler(engagementService, engagementKinds)
	acceptanceHandler := NewAcceptanceHandler(acceptanceService, questionKinds)
	reviewHandler := NewReviewHandler(reviewService)
	questionHandler := NewQuestionHandler(questionService)
	aiHandler := NewAIHandler(aiService, syncService)
	notificationHandler := NewNotificationHandler(notificationService)

	requireAuth := middleware.RequireAuth(cfg.JWTSecret)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", requireAuth, authHandler.Me)
		}

		users := api.Group("/users")
		{
			users.GET("/:id", userHandler.Profile)
			users.Use(requireAuth)
			{
				users.PUT("/me/avatar", userHandler.UploadAvatar)
				users.GET("/me/points", userHandler.Points)
			}
		}

		phones := api.Group("/phones")
		{
			phones.GET("", catalogHandler.ListPhones)
			phones.GET("/:id", catalogHandler.GetPhone)
		}

		companies := api.Group("/companies")
		{
			companies.GET("/:id", catalogHandler.GetCompany)
			companies.PUT("/:id/logo", requireAuth, catalogHandler.UploadCompanyLogo)
		}

		// Content families: :area is "phone" or "company"; the same review,
		// question and engagement surface exists for both.
		area := api.Group("/:area")
		{
			area.GET("/targets/:targetId/reviews", reviewHandler.ListByTarget)
			area.GET("/targets/:targetId/questions", questionHandler.ListByTarget)

			reviews := area.Group("/reviews")
			{
				reviews.GET("/:id", middleware.OptionalAuth(cfg.JWTSecret), reviewHandler.Get)
				reviews.GET("/:id/comments", reviewHandler.ListComments)

				reviews.Use(requireAuth)
				{
					reviews.POST("", reviewHandler.Create)
					reviews.PUT("/:id/visibility", reviewHandler.SetHidden)
					reviews.POST("/:id/comments", reviewHandler.CreateComment)
					reviews.POST("/:id/like", engagementHandler.Like("review"))
					reviews.DELETE("/:id/like", engagementHandler.Unlike("review"))
				}
			}

			questions := area.Group("/questions")
			{
				questions.GET("/:qid", questionHandler.Get)
				questions.GET("/:qid/answers", questionHandler.ListAnswers)

				questions.Use(requireAuth)
				{
					questions.POST("", questionHandler.Create)
					questions.POST("/:qid/answers", questionHandler.CreateAnswer)
					questions.POST("/:qid/upvote", engagementHandler.LikeByParam("question", "qid"))
					questions.DELETE("/:qid/upvote", engagementHandler.UnlikeByParam("question", "qid"))
					questions.PUT("/:qid/answers/:aid/accept", acceptanceHandler.Accept)
					questions.PUT("/:qid/answers/:aid/reject", acceptanceHandler.Reject)
				}
			}

			answers := area.Group("/answers")
			answers.Use(requireAuth)
			{
				answers.POST("/:id/like", engagementHandler.Like("answer"))
				answers.DELETE("/:id/like", engagementHandler.Unlike("answer"))
			}

			comments := area.Group("/comments")
			{
				comments.GET("/:id/replies", reviewHandler.ListReplies)

				comments.Use(requireAuth)
				{
					comments.POST("/:id/like", engagementHandler.Like("comment"))
					comments.DELETE("/:id/like", engagementHandler.Unlike("comment"))
				}
			}
		}

		api.GET("/recommendations", requireAuth, aiHandler.Recommendations)

		// Trainer callback, guarded by the shared API key.
		ai := api.Group("/ai")
		ai.Use(middleware.RequireAPIKey(cfg.TrainerKey))
		{
			ai.PUT("/lastquery", aiHandler.SetLastQuery)
		}

		notifications := api.Group("/notifications")
		notifications.Use(requireAuth)
		{
			notifications.GET("", notificationHandler.List)
			notifications.PUT("/:id/read", notificationHandler.MarkAsRead)
			notifications.PUT("/read-all", notificationHandler.MarkAllAsRead)
		}
	}

	r.GET("/ws", func(c *gin.Context) {
		websocket.ServeWS(wsHub, cfg.JWTSecret)(c.Writer, c.Request)
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
}

// migrate creates the fixed tables plus every table the kind registries
// scope dynamically: one target/like/unlike set per engagement kind and
// one accepted/removed/changed set per question family.
func migrate(db *gorm.DB, engagementKinds map[string]model.EngagementKind, questionKinds map[string]model.QuestionKind) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Phone{},
		&model.Company{},
		&model.PointLog{},
		&model.Notification{},
		&model.SyncCheckpoint{},
	); err != nil {
		return err
	}

	// Comment target tables double as engagement targets, so every target
	// table is covered by the engagement-kind walk below.
	targetShapes := map[string]interface{}{
		"phone_reviews":           &model.Review{},
		"company_reviews":         &model.Review{},
		"phone_questions":         &model.Question{},
		"company_questions":       &model.Question{},
		"phone_answers":           &model.Answer{},
		"company_answers":         &model.Answer{},
		"phone_review_comments":   &model.Comment{},
		"company_review_comments": &model.Comment{},
	}
	for table, shape := range targetShapes {
		if err := db.Table(table).AutoMigrate(shape); err != nil {
			return err
		}
	}

	for _, kind := range engagementKinds {
		if err := db.Table(kind.LikeTable).AutoMigrate(&model.LikeRecord{}); err != nil {
			return err
		}
		if err := db.Table(kind.UnlikeTable).AutoMigrate(&model.UnlikeRecord{}); err != nil {
			return err
		}
	}

	for _, kind := range questionKinds {
		for _, table := range []string{kind.AcceptedTable, kind.AcceptedRemovedTable, kind.AcceptedChangedTable} {
			if err := db.Table(table).AutoMigrate(&model.AcceptanceDelta{}); err != nil {
				return err
			}
		}
	}

	return nil
}

func corsMiddleware(clientURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", clientURL)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// initRedisWithRetry connects to Redis with exponential backoff. The app
// runs without it; caching and the popularity ranking degrade gracefully.
func initRedisWithRetry(cfg *config.Config) *util.RedisClient {
	maxRetries := 5
	delay := 2 * time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		redisClient, err := util.NewRedisClient(cfg)
		if err == nil {
			logger.Infof("redis connected on attempt %d", attempt)
			return redisClient
		}

		if attempt < maxRetries {
			logger.Warnf("failed to connect to redis (attempt %d/%d): %v, retrying in %v", attempt, maxRetries, err, delay)
			time.Sleep(delay)
			if delay < 30*time.Second {
				delay *= 2
			}
		} else {
			logger.Warnf("failed to connect to redis after %d attempts: %v, caching disabled", maxRetries, err)
		}
	}

	return nil
}

// initRabbitMQWithRetry connects to RabbitMQ with exponential backoff.
// Without a broker, notifications are pushed straight to the hub.
func initRabbitMQWithRetry(cfg *config.Config) *util.RabbitMQClient {
	maxRetries := 5
	delay := 2 * time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		rabbitMQ, err := util.NewRabbitMQClient(cfg)
		if err == nil {
			logger.Infof("rabbitmq connected on attempt %d", attempt)
			return rabbitMQ
		}

		if attempt < maxRetries {
			logger.Warnf("failed to connect to rabbitmq (attempt %d/%d): %v, retrying in %v", attempt, maxRetries, err, delay)
			time.Sleep(delay)
			if delay < 30*time.Second {
				delay *= 2
			}
		} else {
			logger.Warnf("failed to connect to rabbitmq after %d attempts: %v, async notifications disabled", maxRetries, err)
		}
	}

	return nil
}
