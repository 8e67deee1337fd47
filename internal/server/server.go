package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"newsticker/config"
	"newsticker/internal/telemetry"
)

// Run wires the pipeline and serves the ticker API until the listener
// fails. The web UI is a separate static page; this process only exposes
// the JSON endpoints it polls.
func Run(cfg *config.Config, addr string) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	adapter, err := BuildPipeline(cfg, log.New(log.Writer(), "[AGENT] ", log.LstdFlags))
	if err != nil {
		return err
	}

	var tele *telemetry.Telemetry
	if cfg.Telemetry.Enabled {
		tele = telemetry.New(prometheus.DefaultRegisterer)
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	h := &NewsHandler{
		Adapter: adapter,
		Quota:   cfg.Agent.Quota,
		Tele:    tele,
		Logger:  log.New(log.Writer(), "[NEWS] ", log.LstdFlags),
	}
	e.GET("/api/news", h.GetNews)
	e.POST("/api/refresh", h.GetNews)
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	if addr == "" {
		addr = cfg.General.Listen
	}
	baseLogger.Printf("listening on %s", addr)
	return e.Start(addr)
}
