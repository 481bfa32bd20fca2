package webhook

import (
	"encoding/json"
	"strings"

	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/responses"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/pkg/logging"
)

// Decoded shape names, used for logging and metrics.
const (
	ShapeEmpty        = "empty"
	ShapeRawText      = "raw_text"
	ShapeArrayOutput  = "array_output"
	ShapeObjResponse  = "object_response"
	ShapeRequestEcho  = "request_echo"
	ShapeObjField     = "object_field"
	ShapeString       = "string"
	ShapeUnrecognized = "unrecognized"
)

// objectFieldPriority is the field order tried for plain object responses.
var objectFieldPriority = []string{"output", "message", "text", "content", "answer", "result"}

// Decoder turns a webhook response body of unknown shape into a display
// string. It never fails outright; unrecognized shapes produce a fixed
// apology. lastUserMessage feeds the local keyword fallback used when the
// workflow echoes the request back without an answer.
type Decoder struct {
	logger *logging.Logger
}

func NewDecoder(logger *logging.Logger) *Decoder {
	if logger == nil {
		logger = logging.Default()
	}
	return &Decoder{logger: logger}
}

// shapeMatcher is one entry in the decode table: a predicate over the
// parsed body paired with an extractor. Matchers are evaluated in order,
// first match wins.
type shapeMatcher struct {
	shape   string
	match   func(data any) bool
	extract func(d *Decoder, data any, lastUserMessage string) string
}

var decodeTable = []shapeMatcher{
	{
		// [{"output": "...", "error"?: "..."}], the usual workflow reply.
		shape: ShapeArrayOutput,
		match: func(data any) bool {
			first, ok := firstElement(data)
			if !ok {
				return false
			}
			_, has := first["output"]
			return has
		},
		extract: func(d *Decoder, data any, _ string) string {
			first, _ := firstElement(data)
			if errVal, ok := first["error"]; ok {
				d.logger.Warn("webhook returned an error alongside output", "error", errVal)
			}
			return stringify(first["output"])
		},
	},
	{
		// {"response": "..."} from the configured respond-to-webhook node.
		shape: ShapeObjResponse,
		match: func(data any) bool {
			obj, ok := data.(map[string]any)
			if !ok {
				return false
			}
			_, has := obj["response"]
			return has
		},
		extract: func(_ *Decoder, data any, _ string) string {
			return stringify(data.(map[string]any)["response"])
		},
	},
	{
		// An echo of our own request: [{"body": ..., "headers": ...,
		// "webhookUrl": ...}]. The workflow accepted the message but gave
		// no answer in-band.
		shape: ShapeRequestEcho,
		match: func(data any) bool {
			first, ok := firstElement(data)
			if !ok {
				return false
			}
			_, hasBody := first["body"]
			_, hasHeaders := first["headers"]
			_, hasURL := first["webhookUrl"]
			return hasBody && hasHeaders && hasURL
		},
		extract: func(d *Decoder, data any, lastUserMessage string) string {
			first, _ := firstElement(data)
			if msg, ok := first["responseMessage"]; ok {
				return stringify(msg)
			}
			// Some other element of the array may carry the output.
			arr := data.([]any)
			for _, item := range arr {
				if obj, ok := item.(map[string]any); ok {
					if out, ok := obj["output"]; ok && stringify(out) != "" {
						return stringify(out)
					}
				}
			}
			d.logger.Info("webhook echoed the request without an answer, using local fallback")
			return responses.Match(lastUserMessage)
		},
	},
	{
		// {"output"|"message"|"text"|"content"|"answer"|"result": ...}
		shape: ShapeObjField,
		match: func(data any) bool {
			obj, ok := data.(map[string]any)
			if !ok {
				return false
			}
			for _, field := range objectFieldPriority {
				if _, has := obj[field]; has {
					return true
				}
			}
			return false
		},
		extract: func(_ *Decoder, data any, _ string) string {
			obj := data.(map[string]any)
			for _, field := range objectFieldPriority {
				if val, has := obj[field]; has {
					return stringify(val)
				}
			}
			return responses.ProcessFailure
		},
	},
	{
		// A bare JSON string.
		shape: ShapeString,
		match: func(data any) bool {
			_, ok := data.(string)
			return ok
		},
		extract: func(_ *Decoder, data any, _ string) string {
			return data.(string)
		},
	},
}

// Decode produces the display text and the matched shape name for a raw
// response body.
func (d *Decoder) Decode(body []byte, lastUserMessage string) (string, string) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return responses.EmptyReply, ShapeEmpty
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		// Not JSON: the body itself is the message.
		return trimmed, ShapeRawText
	}

	for _, m := range decodeTable {
		if m.match(data) {
			return m.extract(d, data, lastUserMessage), m.shape
		}
	}
	return responses.ProcessFailure, ShapeUnrecognized
}

// firstElement returns the first element of a non-empty array when it is
// an object.
func firstElement(data any) (map[string]any, bool) {
	arr, ok := data.([]any)
	if !ok || len(arr) == 0 {
		return nil, false
	}
	obj, ok := arr[0].(map[string]any)
	return obj, ok
}

// stringify renders a decoded JSON value as display text. Strings pass
// through; anything else is re-marshaled, mirroring how the widget
// stringified structured "result" values.
func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
