// Package web serves the chat GUI and its JSON API.
package web

import (
	"context"
	"embed"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/natexcvi/speedcam-llm/agents"
	"github.com/natexcvi/speedcam-llm/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

//go:embed static
var static embed.FS

// Server is the web chat backend. Every request runs its own turn.
type Server struct {
	app       *fiber.App
	addr      string
	assistant agents.Agent[string, *agents.Turn]
}

func NewServer(addr string, assistant agents.Agent[string, *agents.Turn]) *Server {
	s := &Server{
		addr:      addr,
		assistant: assistant,
	}

	app := fiber.New(fiber.Config{
		AppName:               "Speed Camera Assistant",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
	})

	app.Use(cors.New())
	app.Use(s.recordRequest)

	app.Get("/health", s.handleHealth)
	app.Post("/chat", s.handleChat)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Use("/", filesystem.New(filesystem.Config{
		Root:       http.FS(static),
		PathPrefix: "static",
		Index:      "index.html",
	}))

	s.app = app
	return s
}

// App exposes the fiber app, mostly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	log.Infof("web chat listening on %s", s.addr)
	return s.app.Listen(s.addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) recordRequest(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	status := c.Response().StatusCode()
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
	}
	metrics.RecordRequest(c.Method(), c.Route().Path, strconv.Itoa(status), time.Since(start).Seconds())
	return err
}
