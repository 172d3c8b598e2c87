package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yukikurage/club-projects-api/internal/auth"
	apierrors "github.com/yukikurage/club-projects-api/internal/errors"
	"github.com/yukikurage/club-projects-api/internal/middleware"
	"github.com/yukikurage/club-projects-api/internal/services"
	"github.com/yukikurage/club-projects-api/internal/storage"
)

// respondError maps service and storage errors onto the API error envelope.
func respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.BadRequestWithDetails(c, "Validation failed", verr.Fields)
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, storage.ErrNoFile),
		errors.Is(err, storage.ErrFileTooLarge),
		errors.Is(err, storage.ErrUnsupportedType):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, services.ErrAccountInactive):
		apierrors.Unauthorized(c, "Account is deactivated")
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, "You are not allowed to perform this action")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	default:
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("request failed")
		apierrors.InternalError(c, "")
	}
}

// parseID reads a numeric path parameter, answering 400 when it is malformed.
// IDs must fit a signed 64-bit column.
func parseID(c *gin.Context, param, resource string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 63)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, fmt.Sprintf("Invalid %s ID", resource))
		return 0, false
	}
	return id, true
}

// requireIdentity returns the caller set by the auth middleware.
func requireIdentity(c *gin.Context) (auth.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return auth.Identity{}, false
	}
	return identity, true
}
