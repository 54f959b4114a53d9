package v1

import (
	"net/http"

	"colchester-plumber-api/internal/domain"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC domain.HealthUsecase
}

func NewHealthHandler(public *gin.RouterGroup, healthUC domain.HealthUsecase) {
	handler := &HealthHandler{
		healthUC: healthUC,
	}

	// Uptime checkers probe with whatever verb they like; echo it back.
	public.Any("/health", handler.Check)
}

// Check godoc
// @Summary      Liveness probe
// @Description  Reports that the API is up and which email settings are present.
// @Tags         health
// @Produce      json
// @Success      200  {object}  domain.HealthStatus
// @Router       /health [get]
// @Router       /health [post]
func (h *HealthHandler) Check(c *gin.Context) {
	status := h.healthUC.Check(c.Request.Context())
	status.Method = c.Request.Method
	c.JSON(http.StatusOK, status)
}
