package server

import (
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"newsticker/models"
)

type stubAdapter struct {
	reply  string
	prompt string
}

func (s *stubAdapter) RunBlocking(prompt string) string {
	s.prompt = prompt
	return s.reply
}

func invoke(t *testing.T, adapter *stubAdapter) *httptest.ResponseRecorder {
	t.Helper()
	h := &NewsHandler{
		Adapter: adapter,
		Quota:   5,
		Logger:  log.New(log.Writer(), "[NEWS] ", log.LstdFlags),
		Now:     func() time.Time { return time.Date(2025, 7, 1, 14, 30, 0, 0, time.UTC) },
	}
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
	rec := httptest.NewRecorder()
	if err := h.GetNews(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec
}

func TestGetNewsReturnsParsedRecords(t *testing.T) {
	adapter := &stubAdapter{reply: strings.Join([]string{
		"Date: 2025-07-01 14:30",
		"Source: TechCrunch",
		"Headline: [Innovation] Example Headline",
		"",
		"Date: 2025-07-01 13:10",
		"Source: Wired",
		"Headline: [Industry] Second Example",
	}, "\n")}

	rec := invoke(t, adapter)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var records []models.NewsRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(records) != 2 || records[0].Source != "TechCrunch" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestGetNewsBuildsDayScopedPrompt(t *testing.T) {
	adapter := &stubAdapter{reply: "nothing"}
	invoke(t, adapter)

	if !strings.Contains(adapter.prompt, "EXACTLY 5") {
		t.Fatalf("prompt missing quota: %q", adapter.prompt)
	}
	if !strings.Contains(adapter.prompt, "2025-07-01") {
		t.Fatalf("prompt missing current date: %q", adapter.prompt)
	}
	if !strings.Contains(adapter.prompt, "14:30:00") {
		t.Fatalf("prompt missing current time: %q", adapter.prompt)
	}
}

func TestGetNewsErrorSentinelBecomesJSONError(t *testing.T) {
	adapter := &stubAdapter{reply: "Error: no response received from agent"}

	rec := invoke(t, adapter)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !strings.HasPrefix(payload["error"], "Error:") {
		t.Fatalf("expected error payload, got %v", payload)
	}
}

func TestGetNewsUnparseableReplyIsEmptyList(t *testing.T) {
	adapter := &stubAdapter{reply: "the agent rambled without any structure"}

	rec := invoke(t, adapter)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty JSON array, got %q", rec.Body.String())
	}
}
