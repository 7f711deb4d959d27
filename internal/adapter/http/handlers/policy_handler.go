package handlers

import (
	"errors"
	"net/http"

	"sigorta_portal/internal/adapter/http/dto/request"
	"sigorta_portal/internal/adapter/http/dto/response"
	"sigorta_portal/internal/adapter/http/middlewares"
	"sigorta_portal/internal/usecase"
	"sigorta_portal/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidPolicyPayload = pkg.NewDomainErrorSimple("INVALID_POLICY_INPUT", "Invalid policy payload", http.StatusBadRequest)

// PolicyHandler handles HTTP requests for policy issuance and lookup.

type PolicyHandler struct {
	usecase usecase.IPolicyUseCase
}

func NewPolicyHandler(uc usecase.IPolicyUseCase) *PolicyHandler {
	return &PolicyHandler{usecase: uc}
}

func (h *PolicyHandler) IssuePolicy(c *gin.Context) {
	actor, ok := middlewares.ActorFromContext(c)
	if !ok {
		c.JSON(errMissingIdentity.HTTPStatus, errMissingIdentity.ToHTTPError())
		return
	}

	var payload request.IssuePolicyRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPolicyPayload.HTTPStatus, errInvalidPolicyPayload.ToHTTPError())
		return
	}

	startDate, endDate, err := payload.ResolveDates()
	if err != nil {
		c.JSON(errInvalidPolicyPayload.HTTPStatus, errInvalidPolicyPayload.ToHTTPError())
		return
	}

	policy, err := h.usecase.IssuePolicy(c.Request.Context(), actor,
		payload.ResolveQuoteID(), payload.ResolvePolicyNumber(), startDate, endDate)
	if err != nil {
		appErr := mapPolicyError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromPolicy(policy))
}

func (h *PolicyHandler) GetPolicy(c *gin.Context) {
	actor, ok := middlewares.ActorFromContext(c)
	if !ok {
		c.JSON(errMissingIdentity.HTTPStatus, errMissingIdentity.ToHTTPError())
		return
	}

	policy, err := h.usecase.GetPolicy(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		appErr := mapPolicyError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPolicy(policy))
}

func (h *PolicyHandler) ListPolicies(c *gin.Context) {
	actor, ok := middlewares.ActorFromContext(c)
	if !ok {
		c.JSON(errMissingIdentity.HTTPStatus, errMissingIdentity.ToHTTPError())
		return
	}

	policies, err := h.usecase.ListPolicies(c.Request.Context(), actor)
	if err != nil {
		appErr := mapPolicyError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPolicies(policies))
}

// mapPolicyError keeps every issuance precondition distinguishable: callers
// must be able to tell a terminal business-rule violation from something
// worth retrying.
func mapPolicyError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Caller is not allowed to perform this operation", http.StatusForbidden)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPolicyNotFound):
		return pkg.NewDomainErrorSimple("POLICY_NOT_FOUND", "Policy not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteNotApproved):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_APPROVED", "Quote is not approved", http.StatusConflict)
	case errors.Is(err, usecase.ErrPolicyAlreadyIssued):
		return pkg.NewDomainErrorSimple("POLICY_ALREADY_ISSUED", "Quote already has a policy", http.StatusConflict)
	case errors.Is(err, usecase.ErrDuplicatePolicyNumber):
		return pkg.NewDomainErrorSimple("DUPLICATE_POLICY_NUMBER", "Policy number already in use", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidDateRange):
		return pkg.NewDomainErrorSimple("INVALID_DATE_RANGE", "Start date must precede end date", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrInvalidQuoteID), errors.Is(err, usecase.ErrInvalidPolicyID), errors.Is(err, usecase.ErrInvalidPolicyNumber):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
