package forms

import (
	"encoding/json"
	"net/http"
)

// ContactRequest is a contact form submission.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// HandleContact accepts a contact form submission.
func (h *Handler) HandleContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if missing := missingFields(map[string]string{
		"name":    req.Name,
		"email":   req.Email,
		"message": req.Message,
	}); len(missing) > 0 {
		writeFieldError(w, missing)
		return
	}

	h.logger.Info("contact form submitted",
		"name", req.Name,
		"email", req.Email,
		"service", req.Service,
	)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "received",
		"message": "Thank you! Our AI system has received your message and will respond shortly.",
	})
}
