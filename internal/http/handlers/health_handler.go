package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health. It does not look at provider configuration.
func Health(c *gin.Context) {
	writeJSON(c, http.StatusOK, map[string]string{"status": "ok"})
}
