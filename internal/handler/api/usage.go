package api

import (
	"net/http"

	resdto "zurbo/internal/handler/dto/response"
	"zurbo/internal/handler/httperr"
	"zurbo/internal/handler/middleware"
	"zurbo/internal/usecase"

	"github.com/gin-gonic/gin"
)

type UsageHandler struct {
	guard usecase.RateLimitGuard
}

func NewUsageHandler(guard usecase.RateLimitGuard) *UsageHandler {
	return &UsageHandler{guard: guard}
}

// @Summary Current usage
// @Description Counters and limits for the authenticated client
// @Tags usage
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.UsageResponse
// @Failure 401 {object} httperr.Response
// @Router /api/usage/me [get]
func (h *UsageHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errUnauthenticated, "Internal server error", nil)
		return
	}

	view, err := h.guard.Usage(c.Request.Context(), userID)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	renderUsage(c, view)
}

// @Summary Check limits
// @Description Reports whether a new service request would be accepted now. No request is counted, but a user found over the hourly or daily limit is blocked by this check.
// @Tags usage
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.LimitCheckResponse
// @Failure 401 {object} httperr.Response
// @Router /api/usage/me/check [get]
func (h *UsageHandler) Check(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errUnauthenticated, "Internal server error", nil)
		return
	}

	decision := h.guard.CheckLimits(c.Request.Context(), userID)
	c.JSON(http.StatusOK, resdto.FromDecision(decision))
}

func renderUsage(c *gin.Context, view *usecase.UsageView) {
	res, err := resdto.FromUsageView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
