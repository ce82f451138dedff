package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/v1/check")
	if err := RegisterCheckApi(group, "testdata/frameworks.json", "testdata/breach.json"); err != nil {
		t.Fatalf("RegisterCheckApi should not fail: %s", err)
	}
	return router
}

func postCheck(t *testing.T, router *gin.Engine, body string) (*httptest.ResponseRecorder, checkResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/check/password", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp checkResponse
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("response should be valid JSON: %s", err)
		}
	}
	return w, resp
}

func TestCheckPassword(t *testing.T) {
	router := newTestRouter(t)

	w, resp := postCheck(t, router, `{"password": "Tr0ub4dor&3"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d, want 200", w.Code)
	}
	if resp.Length != 11 || resp.Pool != 94 {
		t.Errorf("metrics mismatch: length %d pool %d", resp.Length, resp.Pool)
	}
	if resp.Rating != "Strong" {
		t.Errorf("Rating: %q, want Strong", resp.Rating)
	}
	if resp.Policy != "Simple" {
		t.Errorf("Policy: %q, want default Simple", resp.Policy)
	}
	if !resp.Passed || len(resp.Failed) != 0 {
		t.Errorf("Simple policy should pass, failed: %v", resp.Failed)
	}
	if resp.Breached {
		t.Error("password should not be a breach hit")
	}
	if resp.Strength == nil {
		t.Error("response should carry a crack-time estimate")
	}
}

func TestCheckPasswordPolicySelector(t *testing.T) {
	router := newTestRouter(t)

	w, resp := postCheck(t, router, `{"password": "abc123", "policy": "Strict"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d, want 200", w.Code)
	}
	if resp.Policy != "Strict" {
		t.Errorf("Policy: %q, want Strict", resp.Policy)
	}
	if resp.Passed {
		t.Error("abc123 should fail the Strict policy")
	}
	for _, key := range []string{"min_length", "upper", "symbol", "entropy"} {
		if resp.Checks[key] {
			t.Errorf("check %q should fail under Strict", key)
		}
	}
}

func TestCheckPasswordUnknownPolicyFallsBack(t *testing.T) {
	router := newTestRouter(t)

	w, resp := postCheck(t, router, `{"password": "abc", "policy": "Nope"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("unknown policy must not be an error, status: %d", w.Code)
	}
	if resp.Policy != "Simple" {
		t.Errorf("Policy: %q, want default Simple", resp.Policy)
	}
}

func TestCheckPasswordBreachHit(t *testing.T) {
	router := newTestRouter(t)

	for _, password := range []string{"letmein", "LETMEIN", "LetMeIn"} {
		body, _ := json.Marshal(checkRequest{Password: password})
		_, resp := postCheck(t, router, string(body))
		if !resp.Breached {
			t.Errorf("%q should be a breach hit regardless of casing", password)
		}
	}
}

func TestCheckPasswordEmpty(t *testing.T) {
	router := newTestRouter(t)

	w, resp := postCheck(t, router, `{"password": ""}`)
	if w.Code != http.StatusOK {
		t.Fatalf("empty password is a valid evaluation, status: %d", w.Code)
	}
	if resp.Length != 0 || resp.Pool != 0 || resp.Entropy != 0 {
		t.Errorf("empty password should have zero metrics: %+v", resp)
	}
	if resp.Rating != "Weak" {
		t.Errorf("Rating: %q, want Weak", resp.Rating)
	}
	if resp.Breached {
		t.Error("empty password must never be a breach hit")
	}
}

func TestCheckPasswordBadBody(t *testing.T) {
	router := newTestRouter(t)

	w, _ := postCheck(t, router, `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: %d, want 400", w.Code)
	}
}

func TestCheckPasswordMissingFrameworksFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/v1/check")
	if err := RegisterCheckApi(group, "testdata/missing.json", ""); err != nil {
		t.Fatalf("a missing frameworks file must degrade, not fail: %s", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/check/password", strings.NewReader(`{"password": "abcdef"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp checkResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response should be valid JSON: %s", err)
	}
	if resp.Policy != "Simple" {
		t.Errorf("Policy: %q, want fallback Simple", resp.Policy)
	}
	if !resp.Passed {
		t.Errorf("abcdef meets the fallback policy, failed: %v", resp.Failed)
	}
}
