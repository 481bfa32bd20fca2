package voice

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/SmokeyLowkey/DouglasDrivewayServices/pkg/logging"
)

// Handler exposes the voice command table over HTTP for the widget.
type Handler struct {
	logger *logging.Logger
}

func NewHandler(logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{logger: logger}
}

// HandleCommand answers a recognized transcript with the spoken response.
func (h *Handler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Transcript string `json:"transcript"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Transcript) == "" {
		http.Error(w, "transcript is required", http.StatusBadRequest)
		return
	}

	reply := Respond(req.Transcript)
	h.logger.Info("voice command answered",
		"transcript", req.Transcript,
		"navigate", reply.Navigate,
	)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(reply)
}

// HandleDemo returns the demo greeting spoken by the speaker button.
func (h *Handler) HandleDemo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Reply{
		Text:   DemoGreeting,
		Speech: DefaultSynthesis(),
	})
}
