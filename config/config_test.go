package config

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DEFAULT_VAT_RATE", "")
	t.Setenv("CORS_ORIGINS", "")

	s := Load()
	if s.Port != "8080" || s.DefaultVATRate != 23 || s.ConnectRetries != 5 {
		t.Fatalf("unexpected defaults %+v", s)
	}
	if len(s.CORSOrigins) != 1 || s.CORSOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected CORS origins %v", s.CORSOrigins)
	}
	if s.SlowRequestThreshold != 200*time.Millisecond {
		t.Fatalf("unexpected slow threshold %v", s.SlowRequestThreshold)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DEFAULT_VAT_RATE", "6")
	t.Setenv("CORS_ORIGINS", "https://a.pt, https://b.pt ,")
	t.Setenv("DB_CONN_MAX_LIFETIME", "1m")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("APP_TIMEZONE", "Nowhere/Invalid")

	s := Load()
	if s.Port != "9000" || s.DefaultVATRate != 6 || s.ConnMaxLifetime != time.Minute {
		t.Fatalf("overrides not applied %+v", s)
	}
	if s.MaxOpenConns != 25 {
		t.Fatalf("bad int should fall back, got %d", s.MaxOpenConns)
	}
	if len(s.CORSOrigins) != 2 || s.CORSOrigins[1] != "https://b.pt" {
		t.Fatalf("unexpected CORS origins %v", s.CORSOrigins)
	}
	if s.Location() != time.UTC {
		t.Fatalf("invalid timezone should fall back to UTC")
	}
}

func TestSMSEnabled(t *testing.T) {
	s := Settings{TwilioAccountSID: "AC1", TwilioAuthToken: "tok"}
	if s.SMSEnabled() {
		t.Fatalf("SMS needs a sender number")
	}
	s.TwilioPhoneNumber = "+351900000000"
	if !s.SMSEnabled() {
		t.Fatalf("SMS should be enabled")
	}
}

func TestPerformanceLoggerRecordsMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	prev := AppMetrics
	AppMetrics = NewMetrics()
	t.Cleanup(func() { AppMetrics = prev })

	r := gin.New()
	r.Use(PerformanceLogger(time.Nanosecond))
	r.GET("/ping/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping/1", nil))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if got := requestCount(t, "/ping/:id", "204"); got != 2 {
		t.Fatalf("expected 2 requests recorded, got %v", got)
	}
	if got := requestCount(t, "unmatched", "404"); got != 1 {
		t.Fatalf("expected unmatched route recorded, got %v", got)
	}
}

func requestCount(t *testing.T, route, status string) float64 {
	t.Helper()
	families, err := AppMetrics.Registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["route"] == route && labels["status"] == status {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestNewLoggerLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		if NewLogger(level) == nil {
			t.Fatalf("nil logger for %s", level)
		}
	}
}
