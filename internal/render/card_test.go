package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const recap = `I have your appointment details.

Name: John Doe
Phone: 555-123-4567
Email: john@example.com
Date: Tomorrow
Time: 2pm

Please confirm these details.`

func TestIsAppointmentCard(t *testing.T) {
	assert.True(t, IsAppointmentCard(recap))
	assert.True(t, IsAppointmentCard("Your appointment is confirmed. Date: Tomorrow"))
	assert.False(t, IsAppointmentCard("Your appointment is confirmed for tomorrow."))
	assert.False(t, IsAppointmentCard("Name: John, please confirm"))
}

func TestExtractCardFields(t *testing.T) {
	card := ExtractCard(recap)
	assert.Equal(t, "John Doe", card.Name)
	assert.Equal(t, "555-123-4567", card.Phone)
	assert.Equal(t, "john@example.com", card.Email)
	assert.Equal(t, "Tomorrow", card.Date)
	assert.Equal(t, "2pm", card.Time)
	assert.Equal(t, StatusPending, card.Status)
	assert.Equal(t, []string{"I have your appointment details.", "Please confirm these details."}, card.Lines)
}

func TestExtractCardConfirmedBanner(t *testing.T) {
	card := ExtractCard("Appointment created!\nName: Jane\nDate: Friday")
	assert.Equal(t, StatusConfirmed, card.Status)
	assert.Equal(t, "Jane", card.Name)
	assert.Equal(t, "Friday", card.Date)
}

func TestExtractCardContactLabel(t *testing.T) {
	card := ExtractCard("Contact: 306-555-0199\nplease respond with yes")
	assert.Equal(t, "306-555-0199", card.Phone)
	assert.Equal(t, StatusPending, card.Status)
}
