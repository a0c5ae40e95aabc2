package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	return body
}

func TestErrorUsesRealStatusAndRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("request_id", "req-1")

	NotFound(c, "Product not found")
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404 got %d", w.Code)
	}
	body := decode(t, w)
	if body["success"] != false || body["message"] != "Product not found" || body["request_id"] != "req-1" {
		t.Fatalf("unexpected body %v", body)
	}
	if _, ok := body["data"]; ok {
		t.Fatalf("empty data should be omitted: %v", body)
	}
}

func TestSuccessEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Created(c, "Review created", gin.H{"id": 3})
	if w.Code != http.StatusCreated {
		t.Fatalf("want 201 got %d", w.Code)
	}
	body := decode(t, w)
	data, ok := body["data"].(map[string]interface{})
	if body["success"] != true || !ok || data["id"] != float64(3) {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestValidationFailedCarriesErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	ValidationFailed(c, "Validation failed", []gin.H{{"field": "email", "message": "Email is invalid"}})
	body := decode(t, w)
	errs, ok := body["errors"].([]interface{})
	if w.Code != http.StatusBadRequest || !ok || len(errs) != 1 {
		t.Fatalf("unexpected validation body %d %v", w.Code, body)
	}
}

func TestFailureUnwrap(t *testing.T) {
	cause := errors.New("db down")
	err := Failure(CodeInternal, "Failed to load cart", cause)
	if !errors.Is(err, cause) || !err.Internal() {
		t.Fatalf("app error should unwrap to its cause")
	}
	if err.Error() != "Failed to load cart: db down" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
