package api

import (
	"net/http"

	resdto "zurbo/internal/handler/dto/response"
	"zurbo/internal/handler/httperr"
	"zurbo/internal/handler/middleware"
	"zurbo/internal/usecase/commands"
	"zurbo/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ConfirmationHandler struct {
	cmds commands.ConfirmationCommands
	q    queries.ConfirmationQueries
}

func NewConfirmationHandler(cmds commands.ConfirmationCommands, q queries.ConfirmationQueries) *ConfirmationHandler {
	return &ConfirmationHandler{cmds: cmds, q: q}
}

// @Summary Confirmation status
// @Description Where the order stands in the mutual confirmation flow
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} queries.ConfirmationView
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/orders/{id}/confirmation [get]
func (h *ConfirmationHandler) Status(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errInvalidID, "Invalid id", nil)
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errUnauthenticated, "Internal server error", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	view, err := h.q.Status(c.Request.Context(), orderID, actorID, role)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Confirm service completion
// @Description Records the caller's confirmation. When both parties have confirmed the escrow payment is released.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.ConfirmResponse
// @Success 202 {object} resdto.ConfirmResponse "Confirmed, release pending"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/orders/{id}/confirm [post]
func (h *ConfirmationHandler) Confirm(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errInvalidID, "Invalid id", nil)
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errUnauthenticated, "Internal server error", nil)
		return
	}

	result, err := h.cmds.Confirm(c.Request.Context(), orderID, actorID)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	renderConfirmResult(c, result)
}

func renderConfirmResult(c *gin.Context, result *commands.ConfirmResult) {
	if result.ReleasePending {
		if result.ReleaseErr != nil {
			// surfaces the cause in the request log
			_ = c.Error(result.ReleaseErr)
		}
		c.JSON(http.StatusAccepted, resdto.FromConfirmResult(result))
		return
	}
	c.JSON(http.StatusOK, resdto.FromConfirmResult(result))
}
