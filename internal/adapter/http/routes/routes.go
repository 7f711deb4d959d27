package routes

import (
	"log"
	"os"
	"strconv"
	"time"

	_ "sigorta_portal/docs" // This will be auto-generated
	"sigorta_portal/internal/adapter/http/handlers"
	"sigorta_portal/internal/adapter/http/middlewares"
	repository2 "sigorta_portal/internal/adapter/persistence/repository"
	"sigorta_portal/internal/adapter/storage"
	"sigorta_portal/internal/infrastructure/database"
	"sigorta_portal/internal/infrastructure/identity"
	"sigorta_portal/internal/infrastructure/objectstore"
	"sigorta_portal/internal/metrics"
	"sigorta_portal/internal/usecase"
	"sigorta_portal/internal/usecase/interfaces"
	"sigorta_portal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	appLog, err := logger.InitLogger()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	metrics.InitAPIMetrics()
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	getRoutes(appLog)

	if err := router.Run(":" + strconv.Itoa(PORT)); err != nil {
		appLog.Fatal("Failed to startup the application", zap.Error(err))
	}
}

func getRoutes(appLog *zap.Logger) {
	ddb := database.ConnectDynamoDB()
	s3Client := objectstore.ConnectS3()

	quoteRepo := repository2.NewQuoteDynamoRepository(ddb)
	policyRepo := repository2.NewPolicyDynamoRepository(ddb)
	userRepo := repository2.NewUserDynamoRepository(ddb)
	activityRepo := repository2.NewActivityLogDynamoRepository(ddb)
	documentStore := storage.NewS3DocumentStore(s3Client)

	var identityProvider interfaces.IIdentityProvider
	httpIdentity, err := identity.NewHTTPIdentityProvider(
		os.Getenv("IDENTITY_ADMIN_URL"), os.Getenv("IDENTITY_ADMIN_KEY"), appLog)
	if err != nil {
		appLog.Warn("identity provider not configured", zap.Error(err))
	} else {
		identityProvider = httpIdentity
	}

	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo, documentStore, activityRepo, appLog)
	policyUseCase := usecase.NewPolicyUseCase(policyRepo, quoteRepo, activityRepo, appLog)
	retentionUseCase := usecase.NewRetentionUseCase(policyRepo, quoteRepo, documentStore, retentionWindowFromEnv(appLog), appLog)
	provisioningUseCase := usecase.NewProvisioningUseCase(identityProvider, userRepo, activityRepo, appLog)

	quoteHandler := handlers.NewQuoteHandler(quoteUseCase)
	policyHandler := handlers.NewPolicyHandler(policyUseCase)
	retentionHandler := handlers.NewRetentionHandler(retentionUseCase)
	userHandler := handlers.NewUserHandler(provisioningUseCase)
	exportHandler := handlers.NewExportHandler(quoteUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPortalRoutes(v1, quoteHandler, policyHandler, userHandler, exportHandler)
	addInternalRoutes(v1, retentionHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
	router.Use(middlewares.GinMetricsMiddleware())
	router.Use(middlewares.NewRateLimiter(rate.Limit(20), 40).Middleware())
}

func retentionWindowFromEnv(appLog *zap.Logger) time.Duration {
	raw := os.Getenv("RETENTION_WINDOW")
	if raw == "" {
		return usecase.DefaultRetentionWindow
	}
	window, err := time.ParseDuration(raw)
	if err != nil || window <= 0 {
		appLog.Warn("invalid RETENTION_WINDOW, using default",
			zap.String("value", raw), zap.Error(err))
		return usecase.DefaultRetentionWindow
	}
	return window
}
