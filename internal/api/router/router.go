// Package router assembles the HTTP routes for the site, the chat
// widget, and the form endpoints.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/chat"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/forms"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/http/middleware"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/site"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/voice"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/pkg/logging"
)

// Config collects the handlers and settings the router needs.
type Config struct {
	Logger *logging.Logger

	Site  *site.Handler
	Chat  *chat.Handler
	Voice *voice.Handler
	Forms *forms.Handler

	Registry *prometheus.Registry

	CORSAllowedOrigins []string
	RateLimitPerSec    float64
	RateLimitBurst     int
}

// New builds the router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Get("/health", handleHealth)
	if cfg.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))
	}

	if cfg.Site != nil {
		r.Get("/", cfg.Site.HandleHome)
		r.Get("/services", cfg.Site.HandleServices)
		r.Get("/gallery", cfg.Site.HandleGallery)
		r.Get("/schedule", cfg.Site.HandleSchedule)
		r.Get("/contact", cfg.Site.HandleContact)
		r.Get("/widget.js", cfg.Site.HandleWidgetJS)
	}

	if cfg.Chat != nil {
		r.Get("/chat/ws", cfg.Chat.HandleWebSocket)
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.RateLimitPerSec > 0 {
			api.Use(middleware.RateLimit(cfg.RateLimitPerSec, cfg.RateLimitBurst))
		}

		if cfg.Chat != nil {
			api.Post("/chat/message", cfg.Chat.HandleMessage)
			api.Get("/chat/history", cfg.Chat.HandleHistory)
		}
		if cfg.Voice != nil {
			api.Post("/voice/command", cfg.Voice.HandleCommand)
			api.Get("/voice/demo", cfg.Voice.HandleDemo)
		}
		if cfg.Forms != nil {
			api.Post("/schedule", cfg.Forms.HandleSchedule)
			api.Get("/schedule/options", cfg.Forms.HandleOptions)
			api.Post("/contact", cfg.Forms.HandleContact)
		}
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
