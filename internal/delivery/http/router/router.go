// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"planner/internal/delivery/http/middleware"
	"planner/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	StudyCategoryHandler *handler.StudyCategoryHandler
	StudyRoomHandler     *handler.StudyRoomHandler
	AttendanceHandler    *handler.AttendanceHandler
	ProfileHandler       *handler.ProfileHandler
	AuthMiddleware       *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	studyCategoryHandler *handler.StudyCategoryHandler
	studyRoomHandler     *handler.StudyRoomHandler
	attendanceHandler    *handler.AttendanceHandler
	profileHandler       *handler.ProfileHandler
	authMiddleware       *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		studyCategoryHandler: params.StudyCategoryHandler,
		studyRoomHandler:     params.StudyRoomHandler,
		attendanceHandler:    params.AttendanceHandler,
		profileHandler:       params.ProfileHandler,
		authMiddleware:       params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// Authenticate runs on every route; it attaches a principal when the cookie
// is usable and lets the request through anonymously otherwise. Mutating
// routes additionally require a principal.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.authMiddleware.Authenticate)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Profile of the authenticated user
	userGroup := e.Group("/user", r.authMiddleware.RequireAuthenticated)
	{
		userGroup.GET("/profile", r.profileHandler.GetProfile)
	}

	// Study categories: reads are public, writes need a principal
	categoryGroup := e.Group("/categories")
	{
		categoryGroup.GET("", r.studyCategoryHandler.List)
		categoryGroup.GET("/:id", r.studyCategoryHandler.Get)
		categoryGroup.POST("", r.studyCategoryHandler.Create, r.authMiddleware.RequireAuthenticated)
		categoryGroup.PUT("/:id", r.studyCategoryHandler.Update, r.authMiddleware.RequireAuthenticated)
		categoryGroup.DELETE("/:id", r.studyCategoryHandler.Delete, r.authMiddleware.RequireAuthenticated)

		// Rooms scoped to a category
		categoryGroup.GET("/:categoryId/rooms", r.studyRoomHandler.ListByCategory)
		categoryGroup.POST("/:categoryId/rooms", r.studyRoomHandler.Create, r.authMiddleware.RequireAuthenticated)
	}

	roomGroup := e.Group("/rooms")
	{
		roomGroup.GET("/:id", r.studyRoomHandler.Get)
		roomGroup.DELETE("/:id", r.studyRoomHandler.Delete, r.authMiddleware.RequireAuthenticated)
	}

	// Attendance is always personal
	attendanceGroup := e.Group("/attendance", r.authMiddleware.RequireAuthenticated)
	{
		attendanceGroup.POST("", r.attendanceHandler.CheckIn)
		attendanceGroup.GET("", r.attendanceHandler.List)
	}
}
