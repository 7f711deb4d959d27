package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"sigorta_portal/internal/adapter/http/handlers/mocks"
	"sigorta_portal/internal/adapter/http/middlewares"
	"sigorta_portal/internal/domain/entities"
	"sigorta_portal/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

var (
	testAgent = entities.Actor{UserID: "agent-1", Role: entities.RoleAgent}
	testStaff = entities.Actor{UserID: "staff-1", Role: entities.RoleStaff}
)

// asActor injects an identity the way RequireAuth would after validating a
// token, so handler tests skip the JWT plumbing.
func asActor(actor entities.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		middlewares.SetActor(c, actor)
		c.Next()
	}
}

func TestQuoteHandler_CreateQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotes", h.CreateQuote)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBufferString(`{"full_name":"Ayse Yilmaz"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotes", asActor(testAgent), h.CreateQuote)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing full name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotes", asActor(testAgent), h.CreateQuote)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBufferString(`{"plate_number":"34ABC123"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().CreateQuote(gomock.Any(), testAgent, gomock.Any()).
			Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusPending, FullName: "Ayse Yilmaz"}, nil)

		r := gin.New()
		r.POST("/v1/quotes", asActor(testAgent), h.CreateQuote)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBufferString(`{"full_name":"Ayse Yilmaz"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var resp map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if resp["id"] != "q-1" || resp["status"] != "pending" {
			t.Fatalf("unexpected body: %v", resp)
		}
	})
}

func TestQuoteHandler_GetQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().GetQuote(gomock.Any(), testAgent, "q-404").
			Return(entities.Quote{}, usecase.ErrQuoteNotFound)

		r := gin.New()
		r.GET("/v1/quotes/:id", asActor(testAgent), h.GetQuote)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotes/q-404", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().GetQuote(gomock.Any(), testAgent, "q-1").
			Return(entities.Quote{}, usecase.ErrForbidden)

		r := gin.New()
		r.GET("/v1/quotes/:id", asActor(testAgent), h.GetQuote)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotes/q-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().GetQuote(gomock.Any(), testAgent, "q-1").
			Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusApproved}, nil)

		r := gin.New()
		r.GET("/v1/quotes/:id", asActor(testAgent), h.GetQuote)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotes/q-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_ListQuotes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("status filter is passed through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().ListQuotes(gomock.Any(), testStaff, entities.QuoteStatusPending).
			Return([]entities.Quote{{ID: "q-1"}, {ID: "q-2"}}, nil)

		r := gin.New()
		r.GET("/v1/quotes", asActor(testStaff), h.ListQuotes)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotes?status=pending", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if len(resp) != 2 {
			t.Fatalf("expected 2 quotes, got %d", len(resp))
		}
	})

	t.Run("invalid status filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().ListQuotes(gomock.Any(), testStaff, entities.QuoteStatus("cancelled")).
			Return(nil, usecase.ErrInvalidStatus)

		r := gin.New()
		r.GET("/v1/quotes", asActor(testStaff), h.ListQuotes)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotes?status=cancelled", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_ApproveQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("agent forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().ApproveQuote(gomock.Any(), testAgent, "q-1").
			Return(entities.Quote{}, usecase.ErrForbidden)

		r := gin.New()
		r.PATCH("/v1/quotes/:id/approve", asActor(testAgent), h.ApproveQuote)

		req := httptest.NewRequest(http.MethodPatch, "/v1/quotes/q-1/approve", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("already resolved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().ApproveQuote(gomock.Any(), testStaff, "q-1").
			Return(entities.Quote{}, usecase.ErrInvalidTransition)

		r := gin.New()
		r.PATCH("/v1/quotes/:id/approve", asActor(testStaff), h.ApproveQuote)

		req := httptest.NewRequest(http.MethodPatch, "/v1/quotes/q-1/approve", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().ApproveQuote(gomock.Any(), testStaff, "q-1").
			Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusApproved}, nil)

		r := gin.New()
		r.PATCH("/v1/quotes/:id/approve", asActor(testStaff), h.ApproveQuote)

		req := httptest.NewRequest(http.MethodPatch, "/v1/quotes/q-1/approve", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if resp["status"] != "approved" {
			t.Fatalf("expected approved, got %v", resp["status"])
		}
	})
}

func TestQuoteHandler_RejectQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().RejectQuote(gomock.Any(), testStaff, "q-1").
			Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusRejected}, nil)

		r := gin.New()
		r.PATCH("/v1/quotes/:id/reject", asActor(testStaff), h.RejectQuote)

		req := httptest.NewRequest(http.MethodPatch, "/v1/quotes/q-1/reject", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_UpdatePremiums(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().UpdatePremiums(gomock.Any(), testStaff, "q-1", 1500.0, 1200.0, 300.0).
			Return(entities.Quote{ID: "q-1", GrossPremium: 1500, NetPremium: 1200, Commission: 300}, nil)

		r := gin.New()
		r.PATCH("/v1/quotes/:id/premiums", asActor(testStaff), h.UpdatePremiums)

		body := `{"gross_premium":1500,"net_premium":1200,"commission":300}`
		req := httptest.NewRequest(http.MethodPatch, "/v1/quotes/q-1/premiums", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("negative figures", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().UpdatePremiums(gomock.Any(), testStaff, "q-1", -1.0, 0.0, 0.0).
			Return(entities.Quote{}, usecase.ErrInvalidPremiums)

		r := gin.New()
		r.PATCH("/v1/quotes/:id/premiums", asActor(testStaff), h.UpdatePremiums)

		req := httptest.NewRequest(http.MethodPatch, "/v1/quotes/q-1/premiums", bytes.NewBufferString(`{"gross_premium":-1}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_UploadDocument(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newUploadRequest := func(t *testing.T, field string) *http.Request {
		t.Helper()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile(field, "ruhsat.pdf")
		if err != nil {
			t.Fatalf("creating form file: %v", err)
		}
		if _, err := fw.Write([]byte("pdf bytes")); err != nil {
			t.Fatalf("writing form file: %v", err)
		}
		mw.Close()

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes/q-1/document", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		return req
	}

	t.Run("missing file part", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotes/:id/document", asActor(testAgent), h.UploadDocument)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newUploadRequest(t, "attachment"))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().AttachDocument(gomock.Any(), testAgent, "q-1", "ruhsat.pdf", gomock.Any(), gomock.Any()).
			Return(entities.Quote{ID: "q-1", DocumentURL: "https://bucket/q-1/ruhsat.pdf"}, nil)

		r := gin.New()
		r.POST("/v1/quotes/:id/document", asActor(testAgent), h.UploadDocument)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newUploadRequest(t, "document"))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("upload failure maps to 500", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().AttachDocument(gomock.Any(), testAgent, "q-1", "ruhsat.pdf", gomock.Any(), gomock.Any()).
			Return(entities.Quote{}, errors.New("s3 down"))

		r := gin.New()
		r.POST("/v1/quotes/:id/document", asActor(testAgent), h.UploadDocument)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newUploadRequest(t, "document"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}
