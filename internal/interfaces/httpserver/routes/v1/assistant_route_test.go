package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"pricefinder/search-api/internal/domain/assistant"
	"pricefinder/search-api/internal/infrastructure/llmchat"
)

type stubBackend struct {
	reply string
}

func (s stubBackend) Configured() bool { return true }
func (s stubBackend) Complete(ctx context.Context, messages []llmchat.Message) (string, error) {
	return s.reply, nil
}

func newAssistantRouter(svc *assistant.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/v1")
	NewAssistantRoute(svc).RegisterRouter(group)
	return router
}

func postJSON(router *gin.Engine, path, body, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAssistantEndpointRepliesAndKeysHistoryByHeader(t *testing.T) {
	svc := assistant.NewService(stubBackend{reply: "Check refurbished listings."})
	router := newAssistantRouter(svc)

	rec := postJSON(router, "/v1/assistant", `{"message":"cheap laptop?"}`, "u1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp["response"] != "Check refurbished listings." {
		t.Errorf("response = %q", resp["response"])
	}

	if svc.HistoryLen("u1") != 2 {
		t.Errorf("u1 history = %d, want 2", svc.HistoryLen("u1"))
	}
	if svc.HistoryLen("default") != 0 {
		t.Errorf("default history = %d, want 0", svc.HistoryLen("default"))
	}
}

func TestAssistantEndpointDefaultsUserID(t *testing.T) {
	svc := assistant.NewService(stubBackend{reply: "ok"})
	router := newAssistantRouter(svc)

	rec := postJSON(router, "/v1/assistant", `{"message":"hi there"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.HistoryLen("default") != 2 {
		t.Errorf("default history = %d, want 2", svc.HistoryLen("default"))
	}
}

func TestAssistantEndpointRejectsEmptyMessage(t *testing.T) {
	svc := assistant.NewService(stubBackend{reply: "ok"})
	router := newAssistantRouter(svc)

	rec := postJSON(router, "/v1/assistant", `{"message":""}`, "u1")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAssistantEndpointRejectsBadJSON(t *testing.T) {
	svc := assistant.NewService(stubBackend{reply: "ok"})
	router := newAssistantRouter(svc)

	rec := postJSON(router, "/v1/assistant", `not json`, "u1")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAssistantClearEndpoint(t *testing.T) {
	svc := assistant.NewService(stubBackend{reply: "ok"})
	router := newAssistantRouter(svc)

	postJSON(router, "/v1/assistant", `{"message":"hi there"}`, "u1")
	rec := postJSON(router, "/v1/assistant/clear", ``, "u1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.HistoryLen("u1") != 0 {
		t.Errorf("history after clear = %d, want 0", svc.HistoryLen("u1"))
	}
}
