package mail

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func TestBuildFollowUpMessage(t *testing.T) {
	s := NewEmailSender("smtp.example.com", 587, "user", "pass", "agent@example.com")

	m, err := s.buildFollowUp("lead@example.com", "Ana <Admin>", "Just checking in.")
	require.NoError(t, err)

	assert.Equal(t, []string{"agent@example.com"}, m.GetHeader("From"))
	assert.Equal(t, []string{"lead@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Ana <Admin>, are you still interested?"}, m.GetHeader("Subject"))

	var raw bytes.Buffer
	_, err = m.WriteTo(&raw)
	require.NoError(t, err)
	assert.Contains(t, raw.String(), "Ana &lt;Admin&gt;")
	assert.Contains(t, raw.String(), "Just checking in.")
}

func TestSendFollowUpUsesTransport(t *testing.T) {
	s := NewEmailSender("smtp.example.com", 587, "", "", "agent@example.com")
	var sent *gomail.Message
	s.send = func(m *gomail.Message) error {
		sent = m
		return nil
	}

	require.NoError(t, s.SendFollowUp("lead@example.com", "Lead_1234", "hello"))
	require.NotNil(t, sent)
	assert.Equal(t, []string{"lead@example.com"}, sent.GetHeader("To"))
}

func TestSendFollowUpWrapsTransportError(t *testing.T) {
	s := NewEmailSender("smtp.example.com", 587, "", "", "agent@example.com")
	boom := errors.New("connection refused")
	s.send = func(*gomail.Message) error { return boom }

	err := s.SendFollowUp("lead@example.com", "Lead_1234", "hello")

	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "lead@example.com")
}
