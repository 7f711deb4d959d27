package handlers

import (
	"errors"
	"net/http"

	"sigorta_portal/internal/adapter/http/dto/request"
	"sigorta_portal/internal/adapter/http/dto/response"
	"sigorta_portal/internal/adapter/http/middlewares"
	"sigorta_portal/internal/domain/entities"
	"sigorta_portal/internal/usecase"
	"sigorta_portal/internal/usecase/interfaces"
	"sigorta_portal/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidUserPayload = pkg.NewDomainErrorSimple("INVALID_USER_INPUT", "Invalid user payload", http.StatusBadRequest)

// UserHandler handles admin account provisioning.

type UserHandler struct {
	usecase usecase.IProvisioningUseCase
}

func NewUserHandler(uc usecase.IProvisioningUseCase) *UserHandler {
	return &UserHandler{usecase: uc}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	actor, ok := middlewares.ActorFromContext(c)
	if !ok {
		c.JSON(errMissingIdentity.HTTPStatus, errMissingIdentity.ToHTTPError())
		return
	}

	var payload request.CreateUserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidUserPayload.HTTPStatus, errInvalidUserPayload.ToHTTPError())
		return
	}

	user, err := h.usecase.CreateUser(c.Request.Context(), actor, interfaces.NewAccount{
		Email:    payload.Email,
		Password: payload.Password,
		FullName: payload.FullName,
		Role:     entities.Role(payload.Role),
	}, payload.Phone)
	if err != nil {
		appErr := mapUserError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromUser(user))
}

func mapUserError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Caller is not allowed to perform this operation", http.StatusForbidden)
	case errors.Is(err, usecase.ErrInvalidAccountInput), errors.Is(err, usecase.ErrInvalidRole):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrIdentityUnavailable):
		return pkg.NewDomainErrorSimple("IDENTITY_UNAVAILABLE", "Identity provider is not configured", http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
