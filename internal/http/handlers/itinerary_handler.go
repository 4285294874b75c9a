// README: Itinerary handlers; /generate answers with JSON, /generate/pdf with a rendered document.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripgen/internal/itinerary"
	"tripgen/internal/logging"
	"tripgen/internal/report"
	"tripgen/internal/service"
)

// SourceHeader tells clients whether the itinerary came from the AI provider or the offline generator.
const SourceHeader = "X-Itinerary-Source"

type Planner interface {
	PlanTrip(ctx context.Context, req itinerary.TripRequest) service.Result
}

type ItineraryHandler struct {
	planner Planner
	maxDays int
	log     *zap.Logger
}

func NewItineraryHandler(planner Planner, maxDays int, log *zap.Logger) *ItineraryHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ItineraryHandler{planner: planner, maxDays: maxDays, log: log}
}

// Generate handles POST /generate. Bad input never produces an error status.
func (h *ItineraryHandler) Generate(c *gin.Context) {
	req := h.bind(c)
	res := h.planner.PlanTrip(c.Request.Context(), req)

	c.Header(SourceHeader, string(res.Source))
	writeJSON(c, http.StatusOK, res.Body())
}

// GeneratePDF handles POST /generate/pdf.
func (h *ItineraryHandler) GeneratePDF(c *gin.Context) {
	req := h.bind(c)
	res := h.planner.PlanTrip(c.Request.Context(), req)

	doc, err := report.Render(res.Itinerary, report.Meta{
		Origin:      req.Origin,
		Destination: req.Destination,
		Budget:      req.Budget,
		Offline:     res.Offline,
	})
	if err != nil {
		logging.FromContext(c.Request.Context(), h.log).Error("render pdf", zap.Error(err))
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.Header(SourceHeader, string(res.ItinerarySource()))
	c.Header("Content-Disposition", `attachment; filename="itinerary.pdf"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}

func (h *ItineraryHandler) bind(c *gin.Context) itinerary.TripRequest {
	var body generateReq
	if err := c.ShouldBindJSON(&body); err != nil {
		logging.FromContext(c.Request.Context(), h.log).Debug("unreadable body, using defaults", zap.Error(err))
		body = generateReq{}
	}
	return body.toTripRequest(h.maxDays)
}
