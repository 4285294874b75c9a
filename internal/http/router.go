// README: HTTP router registration.
package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripgen/internal/http/handlers"
	"tripgen/internal/http/middleware"
)

type RouterDeps struct {
	Planner     handlers.Planner
	Logger      *zap.Logger
	CORSOrigins []string
	MaxDays     int
}

// NewRouter builds the gin engine. gin's mode must be set by the caller beforehand.
func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	cors, err := middleware.CORS(deps.CORSOrigins)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(log),
		middleware.Logging(log),
		middleware.Recovery(log),
		cors,
	)

	r.GET("/health", handlers.Health)

	itineraryHandler := handlers.NewItineraryHandler(deps.Planner, deps.MaxDays, log)
	r.POST("/generate", itineraryHandler.Generate)
	r.POST("/generate/pdf", itineraryHandler.GeneratePDF)

	return r, nil
}
