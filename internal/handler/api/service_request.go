package api

import (
	"context"
	"net/http"

	"zurbo/internal/domain/servicerequest"
	reqdto "zurbo/internal/handler/dto/request"
	resdto "zurbo/internal/handler/dto/response"
	"zurbo/internal/handler/httperr"
	"zurbo/internal/handler/middleware"
	"zurbo/internal/usecase/commands"
	"zurbo/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type commandFunc func(ctx context.Context, id, actorID uuid.UUID) (*servicerequest.ServiceRequest, error)

type ServiceRequestHandler struct {
	cmds commands.ServiceRequestCommands
	q    queries.ServiceRequestQueries
}

func NewServiceRequestHandler(cmds commands.ServiceRequestCommands, q queries.ServiceRequestQueries) *ServiceRequestHandler {
	return &ServiceRequestHandler{cmds: cmds, q: q}
}

// @Summary Create service request
// @Description Publishes a new service request. Subject to per-client usage limits.
// @Tags service-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateServiceRequestRequest true "Service request"
// @Success 201 {object} resdto.ServiceRequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Header 429 {integer} Retry-After "Seconds until a new request is accepted"
// @Router /api/service-requests [post]
func (h *ServiceRequestHandler) Create(c *gin.Context) {
	clientID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errUnauthenticated, "Internal server error", nil)
		return
	}
	var req reqdto.CreateServiceRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)
	created, err := h.cmds.Create(c.Request.Context(), clientID, req)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), created.ID(), clientID, role)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load service request", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromServiceRequestView(view))
}

// @Summary List my service requests
// @Description Newest first, keyset paginated
// @Tags service-requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "open, withdrawn or completed"
// @Param after query string false "Cursor from a previous page"
// @Param limit query int false "Page size (1-100)"
// @Success 200 {object} resdto.ServiceRequestListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/service-requests [get]
func (h *ServiceRequestHandler) ListMine(c *gin.Context) {
	clientID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errUnauthenticated, "Internal server error", nil)
		return
	}
	var q reqdto.ListServiceRequestsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	var cursor *queries.Cursor
	if q.After != "" {
		cursor = &queries.Cursor{After: q.After}
	}
	items, next, err := h.q.ListMine(c.Request.Context(), clientID, queries.ServiceRequestFilters{Status: q.Status}, cursor, q.Limit)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromServiceRequestList(items, next))
}

// @Summary Get service request
// @Tags service-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service request ID"
// @Success 200 {object} resdto.ServiceRequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/service-requests/{id} [get]
func (h *ServiceRequestHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
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
	view, err := h.q.GetByID(c.Request.Context(), id, actorID, role)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromServiceRequestView(view))
}

// @Summary Withdraw service request
// @Description Owner cancels an open request and frees an active slot
// @Tags service-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service request ID"
// @Success 200 {object} resdto.ServiceRequestResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/service-requests/{id}/withdraw [post]
func (h *ServiceRequestHandler) Withdraw(c *gin.Context) {
	h.close(c, h.cmds.Withdraw)
}

// @Summary Complete service request
// @Description Owner marks an open request as fulfilled and frees an active slot
// @Tags service-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service request ID"
// @Success 200 {object} resdto.ServiceRequestResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/service-requests/{id}/complete [post]
func (h *ServiceRequestHandler) Complete(c *gin.Context) {
	h.close(c, h.cmds.Complete)
}

func (h *ServiceRequestHandler) close(c *gin.Context, transition commandFunc) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errInvalidID, "Invalid id", nil)
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errUnauthenticated, "Internal server error", nil)
		return
	}
	sr, err := transition(c.Request.Context(), id, actorID)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromServiceRequestView(&queries.ServiceRequestView{
		ID:          sr.ID(),
		ClientID:    sr.ClientID(),
		Category:    string(sr.Category()),
		Description: sr.Description(),
		Status:      string(sr.Status()),
		ClosedAt:    sr.ClosedAt(),
		CreatedAt:   sr.CreatedAt(),
		UpdatedAt:   sr.UpdatedAt(),
	}))
}
