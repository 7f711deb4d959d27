package handlers

import (
	"net/http"

	"sigorta_portal/internal/usecase"
	"sigorta_portal/pkg"

	"github.com/gin-gonic/gin"
)

// RetentionHandler exposes the document-retention sweep to the external
// scheduler. The route sits behind the internal-token middleware, not the
// user auth flow.

type RetentionHandler struct {
	usecase usecase.IRetentionUseCase
}

func NewRetentionHandler(uc usecase.IRetentionUseCase) *RetentionHandler {
	return &RetentionHandler{usecase: uc}
}

func (h *RetentionHandler) RunSweep(c *gin.Context) {
	summary, err := h.usecase.RunRetentionSweep(c.Request.Context())
	if err != nil {
		appErr := pkg.NewDomainError("RETENTION_SWEEP_FAILED", "Retention sweep failed", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, summary)
}
