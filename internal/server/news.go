package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"newsticker/internal/telemetry"
	"newsticker/news"
)

// Blocking is the single entry point into the orchestration pipeline: one
// prompt in, one text reply (or error sentinel) out.
type Blocking interface {
	RunBlocking(prompt string) string
}

// NewsHandler serves the ticker endpoints. It owns the day-scoped prompt
// and the reply-to-records step; everything in between belongs to the
// pipeline behind Blocking.
type NewsHandler struct {
	Adapter Blocking
	Quota   int
	Tele    *telemetry.Telemetry
	Logger  *log.Logger
	Now     func() time.Time
}

func (h *NewsHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// NewsPrompt is the day-scoped instruction for one pipeline pass. The
// caller embeds the current date and time so the agent cannot satisfy the
// request from stale context.
func NewsPrompt(quota int, now time.Time) string {
	return fmt.Sprintf(
		"IMPORTANT: Find EXACTLY %d AI news articles from today (%s). "+
			"Search multiple sources if needed: tech sites, company blogs, research sites, and business news. "+
			"Include exact publication times. Sort by newest first. Current time: %s",
		quota, now.Format("2006-01-02"), now.Format("15:04:05"))
}

// GetNews drives one full pipeline pass. The response is always either a
// list of zero or more complete records, or a JSON error payload; a reply
// with nothing parseable is an empty list, not an error.
func (h *NewsHandler) GetNews(c echo.Context) error {
	prompt := NewsPrompt(h.Quota, h.now())

	start := time.Now()
	reply := h.Adapter.RunBlocking(prompt)
	failed := strings.HasPrefix(reply, "Error:")
	if h.Tele != nil {
		h.Tele.ObserveTurn(start, !failed)
	}
	if failed {
		h.Logger.Printf("turn failed: %s", reply)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": reply})
	}

	records := news.Parse(reply)
	if h.Tele != nil {
		h.Tele.AddRecords(len(records))
	}
	if len(records) == 0 {
		h.Logger.Printf("no parseable records in reply (%d bytes)", len(reply))
	}
	return c.JSON(http.StatusOK, records)
}
