package appointment

import (
	"regexp"
	"strings"
)

// Data holds appointment details recovered from chat text. Fields may be
// partially populated; nothing here is validated against an authoritative
// schema.
type Data struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Confirmed bool   `json:"confirmed"`
}

// Placeholder values used when a field could not be recovered.
const (
	defaultDate      = "Tomorrow"
	timeNotSpecified = "Not specified"
	notProvided      = "Not provided"
)

// ---------- package-level compiled regexes ----------

var (
	timeRE       = regexp.MustCompile(`(?i)(\d{1,2}(?::\d{2})?\s*(?:am|pm))`)
	nameLabelRE  = regexp.MustCompile(`(?i)name:\s*([^,\n]+)`)
	phoneLabelRE = regexp.MustCompile(`(?i)(?:contact|phone)(?:\s*number)?:\s*([^,\n]+)`)
	emailLabelRE = regexp.MustCompile(`(?i)email:\s*([^,\n]+)`)
	dateLabelRE  = regexp.MustCompile(`(?i)date:\s*([^,\n]+)`)
	timeLabelRE  = regexp.MustCompile(`(?i)time:\s*([^,\n]+)`)
	emailShapeRE = regexp.MustCompile(`^[\w.%+-]+@[\w.-]+\.[A-Za-z]{2,}$`)
	nonDigitRE   = regexp.MustCompile(`\D`)
	allDigitsRE  = regexp.MustCompile(`^\d+$`)
	tenDigitsRE  = regexp.MustCompile(`^\d{10}$`)
	partSplitRE  = regexp.MustCompile(`[,\n]`)
)

// Extract attempts to recover appointment details from the current message
// and, failing that, from prior bot messages. botHistory is the ordered
// list of bot message texts seen so far. Returns nil when nothing usable
// was found.
//
// Attempts, first hit wins:
//  1. comma-separated "name, phone, email, ..." in the current message
//  2. a prior bot recap listing name:/phone:/email:/date: labels
//  3. for scheduling requests only, token classification of the current
//     message (email-shaped, phone-shaped, first plain token as name)
func Extract(text string, botHistory []string) *Data {
	confirmed := IsConfirmation(text)

	if d := extractCommaForm(text, confirmed); d != nil {
		return d
	}
	if d := extractFromRecap(botHistory, confirmed); d != nil {
		return d
	}
	if IsRequest(text) {
		if d := extractByTokenShape(text); d != nil {
			return d
		}
	}
	return nil
}

// extractCommaForm handles the one-shot "NAME, PHONE, EMAIL, DATE/TIME"
// message. Positions 0/1/2 are taken on faith as name/phone/email.
func extractCommaForm(text string, confirmed bool) *Data {
	if !strings.Contains(text, ",") {
		return nil
	}
	parts := splitTrim(text, ",")
	if len(parts) < 3 {
		return nil
	}

	d := &Data{
		Name:      parts[0],
		Phone:     parts[1],
		Email:     parts[2],
		Date:      defaultDate,
		Time:      timeNotSpecified,
		Confirmed: confirmed,
	}

	remaining := strings.ToLower(strings.Join(parts[3:], " "))
	if strings.Contains(remaining, "tomorrow") {
		d.Date = defaultDate
		if m := timeRE.FindStringSubmatch(remaining); m != nil {
			d.Time = m[1]
		}
	}
	return d
}

// extractFromRecap scans prior bot messages for a detail recap of the form
// "Name: ... Phone: ... Email: ... Date: ...". All four labels must
// resolve; time is optional.
func extractFromRecap(botHistory []string, confirmed bool) *Data {
	for _, text := range botHistory {
		lower := strings.ToLower(text)
		if !strings.Contains(lower, "name:") ||
			!(strings.Contains(lower, "contact") || strings.Contains(lower, "phone")) ||
			!strings.Contains(lower, "email:") ||
			!strings.Contains(lower, "date:") {
			continue
		}

		name := firstGroup(nameLabelRE, text)
		phone := firstGroup(phoneLabelRE, text)
		email := firstGroup(emailLabelRE, text)
		date := firstGroup(dateLabelRE, text)
		if name == "" || phone == "" || email == "" || date == "" {
			continue
		}

		t := firstGroup(timeLabelRE, text)
		if t == "" {
			t = timeNotSpecified
		}
		return &Data{
			Name:      name,
			Phone:     phone,
			Email:     email,
			Date:      date,
			Time:      t,
			Confirmed: confirmed,
		}
	}
	return nil
}

// extractByTokenShape classifies comma/newline-separated tokens of a
// scheduling request by shape: an email-looking token, a ten-digit phone
// token, and the first remaining plain token as the name.
func extractByTokenShape(text string) *Data {
	parts := splitTrimRE(text, partSplitRE)
	if len(parts) < 3 {
		return nil
	}

	var name, phone, email string
	for _, part := range parts {
		if strings.Contains(part, "@") && strings.Contains(part, ".") {
			email = part
			break
		}
	}
	for _, part := range parts {
		if tenDigitsRE.MatchString(nonDigitRE.ReplaceAllString(part, "")) {
			phone = part
			break
		}
	}
	if parts[0] != "" && !strings.Contains(parts[0], "@") && !allDigitsRE.MatchString(parts[0]) {
		name = parts[0]
	}

	date := defaultDate
	timeOfDay := timeNotSpecified
	lower := strings.ToLower(text)
	if strings.Contains(lower, "tomorrow") {
		if m := timeRE.FindStringSubmatch(lower); m != nil {
			timeOfDay = m[1]
		}
	}

	if name == "" || (phone == "" && email == "") {
		return nil
	}
	if phone == "" {
		phone = notProvided
	}
	if email == "" {
		email = notProvided
	}
	return &Data{
		Name:      name,
		Phone:     phone,
		Email:     email,
		Date:      date,
		Time:      timeOfDay,
		Confirmed: false,
	}
}

// ValidEmail reports whether s looks like a deliverable address.
func ValidEmail(s string) bool {
	return emailShapeRE.MatchString(strings.TrimSpace(s))
}

// Normalize lowercases the textual fields for the outbound payload. An
// email that fails the shape check is dropped to an empty string rather
// than passed through. Phone numbers are kept verbatim.
func Normalize(d Data) Data {
	d.Name = strings.ToLower(d.Name)
	d.Date = strings.ToLower(d.Date)
	d.Time = strings.ToLower(d.Time)
	if ValidEmail(d.Email) {
		d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	} else {
		d.Email = ""
	}
	return d
}

func firstGroup(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func splitTrim(text, sep string) []string {
	raw := strings.Split(text, sep)
	out := make([]string, 0, len(raw))
	for _, part := range raw {
		out = append(out, strings.TrimSpace(part))
	}
	return out
}

func splitTrimRE(text string, re *regexp.Regexp) []string {
	raw := re.Split(text, -1)
	out := make([]string, 0, len(raw))
	for _, part := range raw {
		out = append(out, strings.TrimSpace(part))
	}
	return out
}
