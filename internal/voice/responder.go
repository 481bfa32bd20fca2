// Package voice maps recognized speech transcripts to canned spoken
// responses. The browser does the actual recognition and synthesis; this
// package owns the command table and the fixed synthesis parameters.
package voice

import "strings"

// SynthesisParams are the fixed text-to-speech settings the widget applies
// to every response.
type SynthesisParams struct {
	Rate   float64 `json:"rate"`
	Pitch  float64 `json:"pitch"`
	Volume float64 `json:"volume"`
	Lang   string  `json:"lang"`
}

// DefaultSynthesis returns the synthesis settings used for all responses.
func DefaultSynthesis() SynthesisParams {
	return SynthesisParams{Rate: 0.9, Pitch: 1, Volume: 0.8, Lang: "en-US"}
}

// Reply is the spoken response for a voice command, with an optional
// delayed navigation target.
type Reply struct {
	Text            string          `json:"text"`
	Navigate        string          `json:"navigate,omitempty"`
	NavigateDelayMS int             `json:"navigateDelayMs,omitempty"`
	Speech          SynthesisParams `json:"speech"`
}

// DemoGreeting is spoken when the user taps the speaker button.
const DemoGreeting = "Hello! I am your voice assistant for Douglas Driveway Services. You can ask me about our services, schedule appointments, or get contact information."

// Command branches, checked in order; the first branch with a matching
// keyword wins, so "schedule our services" goes to scheduling.
var branches = []struct {
	keywords        []string
	text            string
	navigate        string
	navigateDelayMS int
}{
	{
		keywords:        []string{"schedule", "appointment"},
		text:            "I can help you schedule an appointment. Our next available slots are tomorrow at 10 AM or 2 PM. Would you prefer morning or afternoon?",
		navigate:        "/schedule",
		navigateDelayMS: 3000,
	},
	{
		keywords: []string{"services", "what do you do"},
		text:     "We offer driveway installation, repair and maintenance, sealcoating, and snow removal services. Which service interests you?",
	},
	{
		keywords: []string{"price", "cost"},
		text:     "Our pricing depends on the project size and type. I can connect you with our team for a free estimate. Would you like me to schedule a consultation?",
	},
	{
		keywords: []string{"contact", "phone"},
		text:     "You can reach us at 5-5-5, 1-2-3, 4-5-6-7. We are open Monday through Friday, 7 AM to 6 PM, and Saturday 8 AM to 4 PM.",
	},
	{
		keywords: []string{"location", "where"},
		text:     "We serve the Greater Toronto Area in Ontario. Our team can provide services throughout the GTA region.",
	},
}

// Respond selects the spoken response for a transcript. Unmatched
// commands are echoed back with the menu of things the assistant can do.
func Respond(transcript string) Reply {
	lower := strings.ToLower(transcript)
	for _, b := range branches {
		for _, kw := range b.keywords {
			if strings.Contains(lower, kw) {
				return Reply{
					Text:            b.text,
					Navigate:        b.navigate,
					NavigateDelayMS: b.navigateDelayMS,
					Speech:          DefaultSynthesis(),
				}
			}
		}
	}
	return Reply{
		Text: "I heard you say: " + transcript +
			". I can help you with scheduling appointments, learning about our services, getting pricing information, or contacting our team. What would you like to know?",
		Speech: DefaultSynthesis(),
	}
}
