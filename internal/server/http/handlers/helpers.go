package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/solemart/solemart/internal/domain/errors"
	"github.com/solemart/solemart/internal/domain/model"
	"github.com/solemart/solemart/internal/server/http/dto"
	"github.com/solemart/solemart/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// IsAdmin reports whether the authenticated user carries the admin role.
func IsAdmin(c *gin.Context) bool {
	val, ok := c.Get(middleware.UserRoleContextKey)
	if !ok {
		return false
	}
	role, _ := val.(string)
	return role == string(model.RoleAdmin)
}

// PathID parses a positive numeric path parameter.
func PathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid " + name})
		return 0, false
	}
	return id, true
}

// QueryInt parses an optional numeric query parameter with a fallback.
func QueryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// RespondError maps domain errors onto HTTP statuses with a uniform body.
func RespondError(c *gin.Context, err error) {
	if ve, ok := domainErrors.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "validation failed", Errors: ve.Fields})
		return
	}

	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "not found"})
	case errors.Is(err, domainErrors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Message: "forbidden"})
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Message: "already exists"})
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "invalid credentials"})
	case errors.Is(err, domainErrors.ErrProductUnavailable),
		errors.Is(err, domainErrors.ErrSizeUnavailable),
		errors.Is(err, domainErrors.ErrColorUnavailable),
		errors.Is(err, domainErrors.ErrInsufficientStock),
		errors.Is(err, domainErrors.ErrInvalidOrderState),
		errors.Is(err, domainErrors.ErrPaymentNotCompleted),
		errors.Is(err, domainErrors.ErrInvalidStatus),
		errors.Is(err, domainErrors.ErrNotRefundable):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal server error"})
	}
}
