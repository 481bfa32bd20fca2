package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCommaForm(t *testing.T) {
	d := Extract("John Doe, 555-123-4567, john@example.com, tomorrow at 2pm", nil)
	require.NotNil(t, d)
	assert.Equal(t, "John Doe", d.Name)
	assert.Equal(t, "555-123-4567", d.Phone)
	assert.Equal(t, "john@example.com", d.Email)
	assert.Equal(t, "Tomorrow", d.Date)
	assert.Equal(t, "2pm", d.Time)
	assert.False(t, d.Confirmed)
}

func TestExtractCommaFormPositional(t *testing.T) {
	// Three or more comma parts with an email-shaped third token: positions
	// 0/1/2 become name/phone/email regardless of content checks.
	d := Extract("Jane Roe, 306-555-0199, jane@roe.ca", nil)
	require.NotNil(t, d)
	assert.Equal(t, "Jane Roe", d.Name)
	assert.Equal(t, "306-555-0199", d.Phone)
	assert.Equal(t, "jane@roe.ca", d.Email)
	assert.Equal(t, "Tomorrow", d.Date)
	assert.Equal(t, "Not specified", d.Time)
}

func TestExtractCommaFormTimeVariants(t *testing.T) {
	d := Extract("A, B, c@d.com, tomorrow at 10:30 AM", nil)
	require.NotNil(t, d)
	assert.Equal(t, "10:30 am", d.Time)

	// Without "tomorrow" the trailing time is not scanned.
	d = Extract("A, B, c@d.com, friday at 2pm", nil)
	require.NotNil(t, d)
	assert.Equal(t, "Not specified", d.Time)
}

func TestExtractTooFewParts(t *testing.T) {
	assert.Nil(t, Extract("John, 555-123-4567", nil))
}

func TestExtractConfirmedFlag(t *testing.T) {
	d := Extract("yes - John Doe, 555-123-4567, john@example.com", nil)
	require.NotNil(t, d)
	assert.True(t, d.Confirmed)
}

func TestExtractFromRecap(t *testing.T) {
	history := []string{
		"Hello! How can I help?",
		"Great, let me recap your appointment.\nName: John Doe\nPhone: 555-123-4567\nEmail: john@example.com\nDate: Tomorrow\nTime: 2pm\nPlease confirm.",
	}
	d := Extract("yes", history)
	require.NotNil(t, d)
	assert.Equal(t, "John Doe", d.Name)
	assert.Equal(t, "555-123-4567", d.Phone)
	assert.Equal(t, "john@example.com", d.Email)
	assert.Equal(t, "Tomorrow", d.Date)
	assert.Equal(t, "2pm", d.Time)
	assert.True(t, d.Confirmed)
}

func TestExtractFromRecapContactLabel(t *testing.T) {
	history := []string{
		"Name: Jane Roe, Contact Number: 3065550199, Email: jane@roe.ca, Date: June 3",
	}
	d := Extract("confirm", history)
	require.NotNil(t, d)
	assert.Equal(t, "Jane Roe", d.Name)
	assert.Equal(t, "3065550199", d.Phone)
	assert.Equal(t, "June 3", d.Date)
	assert.Equal(t, "Not specified", d.Time)
}

func TestExtractFromRecapRequiresAllLabels(t *testing.T) {
	history := []string{"Name: Jane Roe, Phone: 3065550199"}
	assert.Nil(t, Extract("yes", history))
}

func TestExtractByTokenShape(t *testing.T) {
	d := Extract("I want to book an appointment\nJohn Doe\n306-555-0199\njohn@example.com", nil)
	require.NotNil(t, d)
	// First token is the intent sentence, which reads as the name under
	// the token-shape heuristic.
	assert.Equal(t, "I want to book an appointment", d.Name)
	assert.Equal(t, "306-555-0199", d.Phone)
	assert.Equal(t, "john@example.com", d.Email)
}

func TestExtractByTokenShapeNeedsIntent(t *testing.T) {
	// Same shape but no scheduling keyword: attempt 3 never runs.
	assert.Nil(t, Extract("hello there\nJohn Doe\n3065550199", nil))
}

func TestExtractByTokenShapeNeedsContact(t *testing.T) {
	assert.Nil(t, Extract("book me in\nJohn Doe\nno phone sorry", nil))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("john@example.com"))
	assert.True(t, ValidEmail(" John.Doe+x@sub.example.ca "))
	assert.False(t, ValidEmail("john@example"))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("@example.com"))
}

func TestNormalize(t *testing.T) {
	d := Normalize(Data{
		Name:  "John Doe",
		Phone: "555-123-4567",
		Email: "John@Example.COM",
		Date:  "Tomorrow",
		Time:  "2PM",
	})
	assert.Equal(t, "john doe", d.Name)
	assert.Equal(t, "555-123-4567", d.Phone)
	assert.Equal(t, "john@example.com", d.Email)
	assert.Equal(t, "tomorrow", d.Date)
	assert.Equal(t, "2pm", d.Time)
}

func TestNormalizeDropsInvalidEmail(t *testing.T) {
	d := Normalize(Data{Email: "bogus@nowhere"})
	assert.Equal(t, "", d.Email)
}
