package httpadapter

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/domain"
)

func TestUploadMapsValidationErrorTo400(t *testing.T) {
	handler, fakes := newTestRouter(RouterOptions{})
	fakes.uploader.err = domain.ValidationError("discipline_or_trade", "is required for consultant_card uploads")

	body, contentType := multipartUpload(t, "report.pdf", map[string]string{
		"upload_location": "consultant_card",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/projects/proj-1/documents", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestUploadMapsSequenceCollisionTo409(t *testing.T) {
	handler, fakes := newTestRouter(RouterOptions{})
	fakes.uploader.err = domain.WrapError(domain.ErrSequenceCollision, "upload", errors.New("display name taken"))

	body, contentType := multipartUpload(t, "invoice.pdf", map[string]string{
		"upload_location": "general",
		"firm_name":       "Acme",
		"invoice":         "true",
		"override_name":   "Acme_Invoice_001.PDF",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/projects/proj-1/documents", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", res.Code)
	}
}

func TestGetDocumentMapsNotFoundTo404(t *testing.T) {
	handler, fakes := newTestRouter(RouterOptions{})
	fakes.reader.err = domain.WrapError(domain.ErrDocumentNotFound, "get", errors.New("id=missing"))

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/missing", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestInternalErrorHidesDetail(t *testing.T) {
	handler, fakes := newTestRouter(RouterOptions{})
	fakes.tree.err = errors.New("pq: connection refused")

	req := httptest.NewRequest(http.MethodGet, "/v1/projects/proj-1/folders", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", res.Code)
	}
	if body := res.Body.String(); body == "" || strings.Contains(body, "connection refused") {
		t.Fatalf("expected opaque error body, got %q", body)
	}
}

func TestUnknownProjectResourceReturns404(t *testing.T) {
	handler, _ := newTestRouter(RouterOptions{})

	req := httptest.NewRequest(http.MethodGet, "/v1/projects/proj-1/unknown", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestMethodNotAllowedOnProjectResources(t *testing.T) {
	handler, _ := newTestRouter(RouterOptions{})

	req := httptest.NewRequest(http.MethodDelete, "/v1/projects/proj-1/settings", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", res.Code)
	}
}
