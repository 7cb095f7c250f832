package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vladislavdragonenkov/fos/internal/health"
)

func TestHandler_AllHealthy(t *testing.T) {
	handler := health.NewHandler("1.2.3")
	handler.RegisterChecker("mongo", health.NewPingChecker("mongo", func(context.Context) error {
		return nil
	}))
	handler.RegisterChecker("kafka", health.NewPingChecker("kafka", func(context.Context) error {
		return nil
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var response health.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.Status != health.StatusHealthy {
		t.Errorf("overall status = %q, want %q", response.Status, health.StatusHealthy)
	}
	if response.Version != "1.2.3" {
		t.Errorf("version = %q, want 1.2.3", response.Version)
	}
	if len(response.Checks) != 2 {
		t.Errorf("checks = %d, want 2", len(response.Checks))
	}
}

func TestHandler_UnhealthyComponent(t *testing.T) {
	handler := health.NewHandler("dev")
	handler.RegisterChecker("mongo", health.NewPingChecker("mongo", func(context.Context) error {
		return errors.New("server selection timeout")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}

	var response health.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.Status != health.StatusUnhealthy {
		t.Errorf("overall status = %q, want %q", response.Status, health.StatusUnhealthy)
	}
	check := response.Checks["mongo"]
	if check.Message != "server selection timeout" {
		t.Errorf("check message = %q", check.Message)
	}
}

func TestLivenessHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	health.LivenessHandler(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("body = %q, want ok", rec.Body.String())
	}
}

func TestReadinessHandler(t *testing.T) {
	handler := health.NewHandler("dev")
	failing := errors.New("down")
	var fail bool
	handler.RegisterChecker("storage", health.NewPingChecker("storage", func(context.Context) error {
		if fail {
			return failing
		}
		return nil
	}))

	rec := httptest.NewRecorder()
	handler.ReadinessHandler(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("ready status = %d, want %d", rec.Code, http.StatusOK)
	}

	fail = true
	rec = httptest.NewRecorder()
	handler.ReadinessHandler(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("not-ready status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}
