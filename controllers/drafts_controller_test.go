package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	config "github.com/isaacrobert33/outreach-logistics/config"
)

// Validation runs before any database access, so these paths are testable
// with an empty config.
func setupDraftRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}

	r := gin.New()
	r.PUT("/api/v1/drafts/:token", SaveDraft(cfg))
	return r
}

func TestSaveDraft_RejectsBadGender(t *testing.T) {
	r := setupDraftRouter()

	body := bytes.NewBufferString(`{"step":1,"name":"Jane Doe","gender":"OTHER"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/drafts/tok-1", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSaveDraft_RejectsBadObjectIDs(t *testing.T) {
	r := setupDraftRouter()

	body := bytes.NewBufferString(`{"step":2,"bankId":"not-hex"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/drafts/tok-1", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSaveDraft_RejectsMalformedBody(t *testing.T) {
	r := setupDraftRouter()

	body := bytes.NewBufferString(`{"step": "two"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/drafts/tok-1", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
