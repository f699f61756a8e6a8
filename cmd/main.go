package main

import (
	"net/http"
	"os"
	"time"

	"pacho/api/handler"
	apiMiddleware "pacho/api/middleware"
	"pacho/api/routes"
	"pacho/config"
	"pacho/internal/repository"
	"pacho/internal/service"
	"pacho/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	db := config.ConnectionDb()
	validate := validator.New()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	if os.Getenv("AUTO_MIGRATE") == "true" {
		if err := config.Migrate(db); err != nil {
			logger.WithError(err).Fatal("migration failed")
		}
	}

	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		logger.Fatal("JWT_SECRET is required")
	}

	sessionTTL := 30 * time.Minute
	jwtManager := utils.JWTManager{
		Secret:   secret,
		Issuer:   os.Getenv("JWT_ISSUER"),
		TokenTTL: sessionTTL,
	}
	tokenIssuer := service.JWTTokenIssuer{Manager: &jwtManager}

	uow := repository.NewUnitOfWork(db)
	userRepo := repository.NewUserRepository(db)
	expertRepo := repository.NewExpertRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	expertAnswerRepo := repository.NewExpertAnswerRepository(db)
	diseaseRepo := repository.NewDiseaseRepository(db)
	treatmentRepo := repository.NewTreatmentRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	hasher := service.BcryptPasswordHasher{}
	clock := service.RealClock{}

	emailSender := service.NewResendEmailSender(
		os.Getenv("RESEND_API_KEY"),
		os.Getenv("EMAIL_FROM"),
		os.Getenv("APP_BASE_URL"),
	)

	authService := service.NewAuthService(
		userRepo,
		expertRepo,
		sessionRepo,
		auditRepo,
		emailSender,
		hasher,
		tokenIssuer,
		clock,
		service.AuthConfig{
			SessionTTL:    sessionTTL,
			ResetTokenTTL: 30 * time.Minute,
		},
		logger,
	)
	expertService := service.NewExpertService(uow, userRepo, expertRepo, expertAnswerRepo, auditRepo, hasher, clock)
	testService := service.NewTestService(uow, expertRepo, questionRepo, auditRepo, clock)
	questionService := service.NewQuestionService(uow, questionRepo, expertAnswerRepo)
	diseaseService := service.NewDiseaseService(diseaseRepo)
	treatmentService := service.NewTreatmentService(uow, treatmentRepo, diseaseRepo, expertRepo, clock)

	authHandler := handler.NewAuthHandler(authService, validate)
	expertHandler := handler.NewExpertHandler(expertService, validate)
	testHandler := handler.NewTestHandler(testService, validate)
	questionHandler := handler.NewQuestionHandler(questionService, validate)
	diseaseHandler := handler.NewDiseaseHandler(diseaseService, validate)
	treatmentHandler := handler.NewTreatmentHandler(treatmentService, diseaseService, validate)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{JWT: &jwtManager, Sessions: sessionRepo}
	router := routes.NewRouter(
		app,
		authHandler,
		expertHandler,
		testHandler,
		questionHandler,
		diseaseHandler,
		treatmentHandler,
		authMiddleware,
	)
	router.RegisterRoutes()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", addr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
