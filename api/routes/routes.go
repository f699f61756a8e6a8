package routes

import (
	"time"

	"pacho/api/handler"
	"pacho/api/middleware"
	"pacho/internal/entity"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Experts        *handler.ExpertHandler
	Tests          *handler.TestHandler
	Questions      *handler.QuestionHandler
	Diseases       *handler.DiseaseHandler
	Treatments     *handler.TreatmentHandler
	AuthMiddleware middleware.AuthMiddleware
	AuthRate       *middleware.RateLimiter
	LoginRate      *middleware.RateLimiter
}

func NewRouter(
	e *echo.Echo,
	auth *handler.AuthHandler,
	experts *handler.ExpertHandler,
	tests *handler.TestHandler,
	questions *handler.QuestionHandler,
	diseases *handler.DiseaseHandler,
	treatments *handler.TreatmentHandler,
	authMiddleware middleware.AuthMiddleware,
) *Router {
	return &Router{
		Echo:           e,
		Auth:           auth,
		Experts:        experts,
		Tests:          tests,
		Questions:      questions,
		Diseases:       diseases,
		Treatments:     treatments,
		AuthMiddleware: authMiddleware,
		AuthRate:       middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute),
		LoginRate:      middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	e.POST("/auth/login", r.Auth.Login, r.LoginRate.Middleware())
	e.POST("/auth/logout", r.Auth.Logout, r.AuthMiddleware.RequireAuth)
	e.POST("/auth/password/forgot", r.Auth.PasswordForgot, r.LoginRate.Middleware())
	e.POST("/auth/password/reset", r.Auth.PasswordReset, r.AuthRate.Middleware())
	e.POST("/experts/register", r.Experts.Register, r.AuthRate.Middleware())

	admin := e.Group("/admin", r.AuthMiddleware.RequireAuth, middleware.RequireRole(entity.UserRoleSuperAdmin))
	admin.GET("/experts", r.Experts.ListAll)
	admin.GET("/experts/pending", r.Experts.ListPending)
	admin.GET("/experts/:id", r.Experts.Get)
	admin.GET("/experts/:id/answers", r.Experts.Answers)
	admin.POST("/experts/:id/enable-test", r.Experts.EnableTest)
	admin.POST("/experts/:id/toggle-status", r.Experts.ToggleStatus)
	admin.DELETE("/experts/:id", r.Experts.DeleteRequest)

	admin.GET("/questions", r.Questions.List)
	admin.GET("/questions/statistics", r.Questions.Statistics)
	admin.GET("/questions/search", r.Questions.Search)
	admin.GET("/questions/:id", r.Questions.Get)
	admin.POST("/questions", r.Questions.Create)
	admin.PUT("/questions/:id", r.Questions.Update)
	admin.DELETE("/questions/:id", r.Questions.Delete)
	admin.POST("/questions/:id/position", r.Questions.ChangePosition)
	admin.POST("/questions/:id/duplicate", r.Questions.Duplicate)

	admin.GET("/diseases", r.Diseases.List)
	admin.GET("/diseases/:id", r.Diseases.Get)
	admin.POST("/diseases", r.Diseases.Create)
	admin.PUT("/diseases/:id", r.Diseases.Update)
	admin.POST("/diseases/:id/toggle-active", r.Diseases.ToggleActive)

	test := e.Group("/test", r.AuthMiddleware.RequireAuth, middleware.RequireRole(entity.UserRoleExpert))
	test.GET("", r.Tests.TakeTest)
	test.POST("/submit", r.Tests.SubmitTest)
	test.GET("/result", r.Tests.Result)

	treatments := e.Group("/treatments", r.AuthMiddleware.RequireAuth, middleware.RequireActiveExpert())
	treatments.GET("", r.Treatments.ListMine)
	treatments.GET("/diseases", r.Diseases.ListActive)
	treatments.POST("", r.Treatments.Create)
	treatments.PUT("/:id", r.Treatments.Update)
	treatments.DELETE("/:id", r.Treatments.Delete)
}
