package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sigorta_portal/internal/adapter/http/handlers/mocks"
	"sigorta_portal/internal/domain/entities"
	"sigorta_portal/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

func TestExportHandler_ExportQuotes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("list error is mapped like the list endpoint", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewExportHandler(uc)

		uc.EXPECT().ListQuotes(gomock.Any(), testAgent, entities.QuoteStatus("cancelled")).
			Return(nil, usecase.ErrInvalidStatus)

		r := gin.New()
		r.GET("/v1/quotes/export", asActor(testAgent), h.ExportQuotes)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotes/export?status=cancelled", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success produces a readable workbook", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewExportHandler(uc)

		uc.EXPECT().ListQuotes(gomock.Any(), testAgent, entities.QuoteStatus("")).
			Return([]entities.Quote{
				{
					ID:           "q-1",
					Status:       entities.QuoteStatusApproved,
					FullName:     "Ayse Yilmaz",
					PlateNumber:  "34ABC123",
					GrossPremium: 1500,
					PolicyNumber: "POL-1",
					CreatedAt:    time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
				},
				{
					ID:        "q-2",
					Status:    entities.QuoteStatusPending,
					FullName:  "Mehmet Demir",
					CreatedAt: time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC),
				},
			}, nil)

		r := gin.New()
		r.GET("/v1/quotes/export", asActor(testAgent), h.ExportQuotes)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotes/export", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
			t.Fatalf("unexpected content type: %s", ct)
		}
		if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") || !strings.Contains(cd, ".xlsx") {
			t.Fatalf("unexpected content disposition: %s", cd)
		}

		f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
		if err != nil {
			t.Fatalf("payload is not a valid workbook: %v", err)
		}
		defer f.Close()

		rows, err := f.GetRows("Quotes")
		if err != nil {
			t.Fatalf("reading sheet: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("expected header plus 2 rows, got %d", len(rows))
		}
		if rows[0][0] != "Quote ID" || rows[0][1] != "Status" {
			t.Fatalf("unexpected header row: %v", rows[0])
		}
		if rows[1][0] != "q-1" || rows[1][2] != "Ayse Yilmaz" {
			t.Fatalf("unexpected first data row: %v", rows[1])
		}
	})

	t.Run("empty listing still returns a workbook", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewExportHandler(uc)

		uc.EXPECT().ListQuotes(gomock.Any(), testAgent, entities.QuoteStatus("")).Return(nil, nil)

		r := gin.New()
		r.GET("/v1/quotes/export", asActor(testAgent), h.ExportQuotes)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotes/export", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
		if err != nil {
			t.Fatalf("payload is not a valid workbook: %v", err)
		}
		defer f.Close()

		rows, err := f.GetRows("Quotes")
		if err != nil {
			t.Fatalf("reading sheet: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("expected header only, got %d rows", len(rows))
		}
	})
}
