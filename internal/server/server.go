// Package server exposes the planner over HTTP. It is the delivery
// surface the mobile views bind to; all business rules live in the
// service layer.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"pocket-planner/internal/apperrors"
	"pocket-planner/internal/service"
)

// API wires the HTTP router to the service layer.
type API struct {
	httpSrv  *http.Server
	validate *validator.Validate

	auth        *service.AuthService
	tasks       *service.TaskService
	categories  *service.CategoryService
	medications *service.MedicationService
}

func New(addr string, auth *service.AuthService, tasks *service.TaskService, categories *service.CategoryService, medications *service.MedicationService) *API {
	api := &API{
		httpSrv:     &http.Server{Addr: addr},
		validate:    validator.New(),
		auth:        auth,
		tasks:       tasks,
		categories:  categories,
		medications: medications,
	}
	api.configRoutes()
	return api
}

func (a *API) Start() error {
	if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *API) Shutdown(ctx context.Context) error {
	return a.httpSrv.Shutdown(ctx)
}

// Handler returns the router, mainly for tests.
func (a *API) Handler() http.Handler {
	return a.httpSrv.Handler
}

func (a *API) configRoutes() {
	router := gin.Default()

	auth := router.Group("/auth")
	{
		auth.POST("/register", a.register)
		auth.POST("/login", a.login)
	}

	api := router.Group("/api", a.requireAuth())
	api.GET("/me", a.me)

	tasks := api.Group("/tasks")
	{
		tasks.GET("", a.listTasks)
		tasks.POST("", a.createTask)
		tasks.POST("/reorder", a.reorderTasks)
		tasks.GET("/timeline", a.taskTimeline)
		tasks.GET("/:taskID", a.getTask)
		tasks.PUT("/:taskID", a.updateTask)
		tasks.DELETE("/:taskID", a.deleteTask)
		tasks.POST("/:taskID/toggle", a.toggleTask)
		tasks.PUT("/:taskID/tags/:tag", a.addTag)
		tasks.DELETE("/:taskID/tags/:tag", a.removeTag)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", a.listCategories)
		categories.POST("", a.createCategory)
		categories.GET("/:categoryID", a.getCategory)
		categories.PUT("/:categoryID", a.updateCategory)
		categories.DELETE("/:categoryID", a.deleteCategory)
		categories.GET("/:categoryID/items", a.categoryItems)
	}

	medications := api.Group("/medications")
	{
		medications.GET("", a.listMedications)
		medications.POST("", a.createMedication)
		medications.GET("/:medicationID", a.getMedication)
		medications.PUT("/:medicationID", a.updateMedication)
		medications.DELETE("/:medicationID", a.deleteMedication)
	}

	a.httpSrv.Handler = router
}

// fail maps a service error onto an HTTP status. Every data-layer error
// is recoverable; the client gets a dismissable message, never a crash.
func fail(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicateEmail):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
