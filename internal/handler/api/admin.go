package api

import (
	"net/http"

	"zurbo/internal/handler/httperr"
	"zurbo/internal/usecase"
	"zurbo/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler exposes operator actions. Routes are mounted behind RequireRole(admin).
type AdminHandler struct {
	confirmations commands.ConfirmationCommands
	guard         usecase.RateLimitGuard
}

func NewAdminHandler(confirmations commands.ConfirmationCommands, guard usecase.RateLimitGuard) *AdminHandler {
	return &AdminHandler{confirmations: confirmations, guard: guard}
}

// @Summary Retry escrow release
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.ConfirmResponse
// @Success 202 {object} resdto.ConfirmResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/orders/{id}/retry-release [post]
func (h *AdminHandler) RetryRelease(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errInvalidID, "Invalid id", nil)
		return
	}
	result, err := h.confirmations.RetryRelease(c.Request.Context(), orderID)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	renderConfirmResult(c, result)
}

// @Summary Clear usage block
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} resdto.UsageResponse
// @Router /api/admin/usage/{userId}/unblock [post]
func (h *AdminHandler) UnblockUsage(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errInvalidID, "Invalid id", nil)
		return
	}
	view, err := h.guard.Unblock(c.Request.Context(), userID)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	renderUsage(c, view)
}
