// Package site serves the marketing pages and the embeddable chat
// widget script.
package site

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/SmokeyLowkey/DouglasDrivewayServices/pkg/logging"
)

//go:embed assets/pages/*.html
var pageFS embed.FS

//go:embed assets/widget.js
var widgetJS []byte

// PageData is the template context shared by every page.
type PageData struct {
	Title         string
	WebsiteName   string
	FallbackPhone string
	Page          string
}

// Handler renders the static site pages.
type Handler struct {
	tmpl          *template.Template
	websiteName   string
	fallbackPhone string
	logger        *logging.Logger
}

// NewHandler parses the embedded page templates.
func NewHandler(websiteName, fallbackPhone string, logger *logging.Logger) (*Handler, error) {
	if logger == nil {
		logger = logging.Default()
	}
	tmpl, err := template.ParseFS(pageFS, "assets/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{
		tmpl:          tmpl,
		websiteName:   websiteName,
		fallbackPhone: fallbackPhone,
		logger:        logger.Named("site"),
	}, nil
}

func (h *Handler) renderPage(w http.ResponseWriter, name, title, page string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := PageData{
		Title:         title,
		WebsiteName:   h.websiteName,
		FallbackPhone: h.fallbackPhone,
		Page:          page,
	}
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("failed to render page", "page", name, "error", err)
	}
}

// HandleHome serves the landing page.
func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	h.renderPage(w, "home.html", h.websiteName, "home")
}

// HandleServices serves the services overview page.
func (h *Handler) HandleServices(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, "services.html", "Our Services", "services")
}

// HandleGallery serves the project gallery page.
func (h *Handler) HandleGallery(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, "gallery.html", "Gallery", "gallery")
}

// HandleSchedule serves the appointment scheduling page.
func (h *Handler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, "schedule.html", "Schedule Service", "schedule")
}

// HandleContact serves the contact page.
func (h *Handler) HandleContact(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, "contact.html", "Contact Us", "contact")
}

// HandleWidgetJS serves the chat widget script with long-lived caching.
func (h *Handler) HandleWidgetJS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(widgetJS)
}
