package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/studyplanner/api/handler"
)

type Handlers struct {
	Activity *apiHandler.ActivityHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.GET("/api/v1/activities", authMiddleware(handlers.Activity.GetActivities))
	r.POST("/api/v1/activities", authMiddleware(handlers.Activity.CreateActivity))
	r.GET("/api/v1/activities/{id}", authMiddleware(handlers.Activity.GetActivity))
	r.PUT("/api/v1/activities/{id}", authMiddleware(handlers.Activity.UpdateActivity))
	r.DELETE("/api/v1/activities/{id}", authMiddleware(handlers.Activity.DeleteActivity))

	return r
}
