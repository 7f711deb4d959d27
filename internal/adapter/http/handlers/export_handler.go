package handlers

import (
	"fmt"
	"net/http"
	"time"

	"sigorta_portal/internal/adapter/http/middlewares"
	"sigorta_portal/internal/domain/entities"
	"sigorta_portal/internal/usecase"
	"sigorta_portal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler renders the caller's visible quotes as a spreadsheet.
// Visibility follows the same rules as the list endpoint, so an agent's
// export only ever contains their own quotes.

type ExportHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewExportHandler(uc usecase.IQuoteUseCase) *ExportHandler {
	return &ExportHandler{usecase: uc}
}

var exportColumns = []string{
	"Quote ID", "Status", "Full Name", "Birth Date", "Company", "Date",
	"Chassis Number", "Plate Number", "Identity Number", "Document Number",
	"Vehicle Type", "Type", "Issuer", "Related Person", "Agency",
	"Gross Premium", "Net Premium", "Commission", "Policy Number", "Created At",
}

func (h *ExportHandler) ExportQuotes(c *gin.Context) {
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

	payload, err := buildQuoteWorkbook(quotes)
	if err != nil {
		appErr := pkg.NewDomainError("EXPORT_FAILED", "Building the export file failed", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	filename := fmt.Sprintf("quotes-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, payload)
}

func buildQuoteWorkbook(quotes []entities.Quote) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Quotes"
	f.SetSheetName(f.GetSheetName(0), sheet)

	header := make([]any, len(exportColumns))
	for i, name := range exportColumns {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, q := range quotes {
		row := []any{
			q.ID, string(q.Status), q.FullName, q.BirthDate, q.Company, q.Date,
			q.ChassisNumber, q.PlateNumber, q.IdentityNumber, q.DocumentNumber,
			q.VehicleType, q.Type, q.Issuer, q.RelatedPerson, q.Agency,
			q.GrossPremium, q.NetPremium, q.Commission, q.PolicyNumber,
			q.CreatedAt.Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
