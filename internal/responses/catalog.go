// Package responses owns the static canned-response catalog for the chat
// and voice widgets. The catalog is loaded once at init and immutable
// afterwards; every fallback path in the service selects from it by
// keyword match. Only the failure strings quoting the fallback phone are
// configurable, once, at startup.
package responses

import "strings"

// Catalog keys.
const (
	KeyGreeting  = "greeting"
	KeyServices  = "services"
	KeyPricing   = "pricing"
	KeyGuarantee = "guarantee"
	KeyLocation  = "location"
	KeyContact   = "contact"
	KeyBooking   = "booking"
	KeyDefault   = "default"
)

var catalog = map[string]string{
	KeyGreeting: "Hello! I'm here to help you with your driveway service needs. How can I assist you today?",
	KeyServices: "We offer driveway installation, repair & maintenance, sealcoating, snow removal, and decorative concrete services. Which service interests you?",
	KeyPricing:  "We provide free quotes for all our services! The cost depends on the size and condition of your project. Would you like to schedule a free consultation?",
	KeyGuarantee: "We offer a satisfaction guarantee on all our services. If you're not completely satisfied, we'll make it right at no additional cost.",
	KeyLocation: "We're based in Regina, Saskatchewan and serve the surrounding areas. We've been proudly serving the community for over 10 years.",
	KeyContact:  "You can reach us at (555) 123-4567 or email info@douglasdrivewayservices.ca. We're available Monday-Friday 7AM-6PM and Saturday 8AM-4PM.",
	KeyBooking:  "I'd be happy to help you book an appointment! You can use our online scheduler or call us directly at (555) 123-4567 for immediate assistance.",
	KeyDefault:  "I'd be happy to help! For specific questions about your project, please call us at (555) 123-4567 or request a free quote through our contact form.",
}

// Fixed failure strings used by the chat path. Chat failures are never
// surfaced as raw errors; the user sees one of these instead.
const (
	EmptyReply     = "I received your message, but I'm not sure how to respond."
	ProcessFailure = "I'm sorry, I couldn't process your request."
)

// defaultFallbackPhone matches the number printed on the site pages.
const defaultFallbackPhone = "(555) 123-4567"

// Failure strings that quote the fallback phone. Rebuilt once at startup
// via SetFallbackPhone, read-only afterwards.
var (
	ConnectionTrouble = connectionTrouble(defaultFallbackPhone)
	Timeout           = timeoutNotice(defaultFallbackPhone)
)

func connectionTrouble(phone string) string {
	return "I'm having trouble connecting to our services. Please try again later or contact us directly at " + phone + "."
}

func timeoutNotice(phone string) string {
	return "It's taking longer than expected to get a response. Please try again or contact us directly at " + phone + "."
}

// SetFallbackPhone rebuilds the failure strings with the configured
// number. Call before serving traffic; a blank phone restores the
// default.
func SetFallbackPhone(phone string) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		phone = defaultFallbackPhone
	}
	ConnectionTrouble = connectionTrouble(phone)
	Timeout = timeoutNotice(phone)
}

// Get returns the canned response for a catalog key, or the default
// response for unknown keys.
func Get(key string) string {
	if text, ok := catalog[key]; ok {
		return text
	}
	return catalog[KeyDefault]
}

// keywordBucket pairs trigger substrings with a catalog key. Order matters:
// the first bucket with a matching keyword wins.
var keywordBuckets = []struct {
	keywords []string
	key      string
}{
	{[]string{"service", "what do you offer", "what do you provide"}, KeyServices},
	{[]string{"price", "cost", "quote"}, KeyPricing},
	{[]string{"guarantee", "warranty"}, KeyGuarantee},
	{[]string{"location", "where", "regina"}, KeyLocation},
	{[]string{"contact", "phone", "email"}, KeyContact},
	{[]string{"book", "appointment", "schedule"}, KeyBooking},
	{[]string{"hello", "hi", "hey"}, KeyGreeting},
}

// Match selects a canned response for a user message by ordered keyword
// matching, falling back to the default response.
func Match(userMessage string) string {
	lower := strings.ToLower(userMessage)
	for _, bucket := range keywordBuckets {
		for _, kw := range bucket.keywords {
			if strings.Contains(lower, kw) {
				return catalog[bucket.key]
			}
		}
	}
	return catalog[KeyDefault]
}
