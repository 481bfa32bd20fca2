// Package forms handles the schedule and contact form submissions.
// Submissions are validated, logged, and echoed back as a confirmation;
// nothing is persisted.
package forms

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/SmokeyLowkey/DouglasDrivewayServices/pkg/logging"
)

// AvailableTimes are the bookable consultation slots shown by the
// scheduler.
var AvailableTimes = []string{
	"8:00 AM", "9:00 AM", "10:00 AM", "11:00 AM",
	"1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM",
}

// Services are the bookable service types.
var Services = []string{
	"Free Consultation",
	"Driveway Installation",
	"Repair & Maintenance",
	"Sealcoating",
	"Snow Removal Setup",
}

// ScheduleRequest is an appointment form submission.
type ScheduleRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Service     string `json:"service"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

// Handler serves the schedule and contact endpoints.
type Handler struct {
	logger *logging.Logger
}

func NewHandler(logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{logger: logger}
}

// HandleSchedule accepts an appointment request. Required fields mirror
// the form's starred inputs.
func (h *Handler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if missing := missingFields(map[string]string{
		"name":  req.Name,
		"email": req.Email,
		"phone": req.Phone,
		"date":  req.Date,
		"time":  req.Time,
	}); len(missing) > 0 {
		writeFieldError(w, missing)
		return
	}

	h.logger.Info("appointment scheduled",
		"name", req.Name,
		"phone", req.Phone,
		"service", req.Service,
		"date", req.Date,
		"time", req.Time,
	)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":      "confirmed",
		"message":     "Thank you for scheduling with Douglas Driveway Services. Our team will call you 24 hours before your appointment to confirm.",
		"appointment": req,
	})
}

// HandleOptions returns the slot and service catalogs the scheduler
// renders.
func (h *Handler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"times":    AvailableTimes,
		"services": Services,
	})
}

func missingFields(fields map[string]string) []string {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

func writeFieldError(w http.ResponseWriter, missing []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "error",
		"missing": missing,
	})
}
