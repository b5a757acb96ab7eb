package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorCarriesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(requestIDKey, "req-1")

	NotFound(c, "order not found")

	if w.Code != http.StatusOK {
		t.Fatalf("http status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int               `json:"status_code"`
		Msg        string            `json:"msg"`
		Data       map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if resp.StatusCode != CodeNotFound || resp.Msg != "order not found" || resp.Data["request_id"] != "req-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSuccessEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, gin.H{"id": "1"})

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if resp.StatusCode != CodeOK || resp.Msg != "success" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	base := errors.New("boom")
	err := WrapError(CodeInternal, "internal error", base)
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to match base")
	}
	if err.Error() != "internal error: boom" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestAppErrorInternal(t *testing.T) {
	if NewAppError(CodeConflict, "conflict").Internal() {
		t.Fatalf("409 should not be internal")
	}
	if !NewAppError(CodeUnavailable, "down").Internal() {
		t.Fatalf("503 should be internal")
	}
	var nilErr *AppError
	if nilErr.Internal() {
		t.Fatalf("nil error should not be internal")
	}
}

func TestErrorFrom(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ErrorFrom(c, NewAppError(CodeTooManyRequests, "slow down"))

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if resp.StatusCode != CodeTooManyRequests || resp.Msg != "slow down" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
