package api

import (
	"errors"
	"net/http"
	"strconv"

	"zurbo/internal/domain/order"
	"zurbo/internal/domain/servicerequest"
	resdto "zurbo/internal/handler/dto/response"
	"zurbo/internal/handler/httperr"
	"zurbo/internal/pkg/errs"
	"zurbo/internal/usecase"
	"zurbo/internal/usecase/commands"
	"zurbo/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var (
	errUnauthenticated = errors.New("missing authenticated user in context")
	errInvalidID       = errors.New("invalid id")
)

// abortWithUseCaseError maps usecase and domain errors onto the HTTP contract.
func abortWithUseCaseError(c *gin.Context, err error) {
	var rateLimited *usecase.RateLimitError
	switch {
	case errors.As(err, &rateLimited):
		abortRateLimited(c, rateLimited)

	case errs.Is(err, errs.ErrDomainValidation), errs.Is(err, queries.ErrInvalidCursor):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request data", validationDetail(err))

	case errs.Is(err, order.ErrNotOrderParty),
		errs.Is(err, servicerequest.ErrNotOwner),
		errs.Is(err, queries.ErrServiceRequestAccess):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)

	case errs.Is(err, errs.ErrOrderNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
	case errs.Is(err, errs.ErrServiceRequestNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Service request not found", nil)
	case errs.Is(err, errs.ErrUserNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)

	case errs.Is(err, order.ErrNotApplicable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Order is not held in escrow", nil)
	case errs.Is(err, servicerequest.ErrNotOpen):
		httperr.AbortWithError(c, http.StatusConflict, err, "Service request is no longer open", nil)
	case errs.Is(err, commands.ErrEmailTaken):
		httperr.AbortWithError(c, http.StatusConflict, err, "Email already registered", nil)

	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func abortRateLimited(c *gin.Context, rl *usecase.RateLimitError) {
	if secs := resdto.RetryAfterSeconds(rl.Decision.RetryAfter); secs > 0 {
		c.Header("Retry-After", strconv.FormatInt(secs, 10))
	}
	httperr.AbortWithError(c, http.StatusTooManyRequests, rl, rl.Decision.Message, resdto.FromDecision(rl.Decision))
}

func validationDetail(err error) any {
	for _, known := range []error{
		servicerequest.ErrInvalidCategory,
		servicerequest.ErrDescriptionTooShort,
		servicerequest.ErrDescriptionTooLong,
		queries.ErrInvalidCursor,
	} {
		if errs.Is(err, known) {
			return gin.H{"reason": known.Error()}
		}
	}
	return nil
}
