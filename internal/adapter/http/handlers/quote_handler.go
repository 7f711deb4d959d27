package handlers

import (
	"context"
	"errors"
	"net/http"

	"sigorta_portal/internal/adapter/http/dto/request"
	"sigorta_portal/internal/adapter/http/dto/response"
	"sigorta_portal/internal/adapter/http/middlewares"
	"sigorta_portal/internal/domain/entities"
	"sigorta_portal/internal/usecase"
	"sigorta_portal/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidQuotePayload = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Invalid quote payload", http.StatusBadRequest)
	errMissingIdentity     = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Missing caller identity", http.StatusUnauthorized)
)

// QuoteHandler handles HTTP requests for the quote lifecycle: creation,
// listing/reading under the caller's visibility, the staff review
// transitions, premium updates and document upload.

type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	actor, ok := middlewares.ActorFromContext(c)
	if !ok {
		c.JSON(errMissingIdentity.HTTPStatus, errMissingIdentity.ToHTTPError())
		return
	}

	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.CreateQuote(c.Request.Context(), actor, usecase.CreateQuoteInput{
		FullName:       payload.FullName,
		BirthDate:      payload.BirthDate,
		Company:        payload.Company,
		Date:           payload.Date,
		ChassisNumber:  payload.ChassisNumber,
		PlateNumber:    payload.PlateNumber,
		IdentityNumber: payload.IdentityNumber,
		DocumentNumber: payload.DocumentNumber,
		VehicleType:    payload.VehicleType,
		Type:           payload.Type,
		Issuer:         payload.Issuer,
		RelatedPerson:  payload.RelatedPerson,
		Agency:         payload.Agency,
		CardInfo:       payload.CardInfo,
		AdditionalInfo: payload.AdditionalInfo,
		GrossPremium:   payload.GrossPremium,
		NetPremium:     payload.NetPremium,
		Commission:     payload.Commission,
	})
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromQuote(quote))
}

func (h *QuoteHandler) GetQuote(c *gin.Context) {
	actor, ok := middlewares.ActorFromContext(c)
	if !ok {
		c.JSON(errMissingIdentity.HTTPStatus, errMissingIdentity.ToHTTPError())
		return
	}

	quote, err := h.usecase.GetQuote(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	actor, ok := middlewares.ActorFromContext(c)
	if !ok {
		c.JSON(errMissingIdentity.HTTPStatus, errMissingIdentity.ToHTTPError())
		return
	}

	quotes, err := h.usecase.ListQuotes(c.Request.Context(), actor, entities.QuoteStatus(c.Query("status")))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuotes(quotes))
}

func (h *QuoteHandler) ApproveQuote(c *gin.Context) {
	h.patchQuoteStatus(c, h.usecase.ApproveQuote)
}

func (h *QuoteHandler) RejectQuote(c *gin.Context) {
	h.patchQuoteStatus(c, h.usecase.RejectQuote)
}

func (h *QuoteHandler) patchQuoteStatus(
	c *gin.Context,
	updater func(ctx context.Context, actor entities.Actor, id string) (entities.Quote, error),
) {
	actor, ok := middlewares.ActorFromContext(c)
	if !ok {
		c.JSON(errMissingIdentity.HTTPStatus, errMissingIdentity.ToHTTPError())
		return
	}

	quote, err := updater(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func (h *QuoteHandler) UpdatePremiums(c *gin.Context) {
	actor, ok := middlewares.ActorFromContext(c)
	if !ok {
		c.JSON(errMissingIdentity.HTTPStatus, errMissingIdentity.ToHTTPError())
		return
	}

	var payload request.UpdatePremiumsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.UpdatePremiums(c.Request.Context(), actor, c.Param("id"),
		payload.GrossPremium, payload.NetPremium, payload.Commission)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func (h *QuoteHandler) UploadDocument(c *gin.Context) {
	actor, ok := middlewares.ActorFromContext(c)
	if !ok {
		c.JSON(errMissingIdentity.HTTPStatus, errMissingIdentity.ToHTTPError())
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}
	defer file.Close()

	quote, err := h.usecase.AttachDocument(c.Request.Context(), actor, c.Param("id"),
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Caller is not allowed to perform this operation", http.StatusForbidden)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Quote is no longer pending", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidQuoteID),
		errors.Is(err, usecase.ErrInvalidQuoteInput),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidPremiums),
		errors.Is(err, usecase.ErrInvalidDocument):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
