package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

var followUpTemplate = template.Must(template.New("follow_up").Parse(`<p>Hi {{.Name}},</p>
<p>{{.Message}}</p>
<p>Just reply to this email and we'll pick up where we left off.</p>`))

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	s := &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
	s.send = func(m *gomail.Message) error {
		return gomail.NewDialer(s.Host, s.Port, s.User, s.Password).DialAndSend(m)
	}
	return s
}

// SendFollowUp emails the follow-up reminder to a quiet lead.
func (s *EmailSender) SendFollowUp(to, name, body string) error {
	m, err := s.buildFollowUp(to, name, body)
	if err != nil {
		return err
	}
	if err := s.send(m); err != nil {
		return fmt.Errorf("mail: send follow-up to %s: %w", to, err)
	}
	return nil
}

func (s *EmailSender) buildFollowUp(to, name, body string) (*gomail.Message, error) {
	var html bytes.Buffer
	if err := followUpTemplate.Execute(&html, FollowUpEmailData{Name: name, Message: body}); err != nil {
		return nil, fmt.Errorf("mail: render follow-up: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("%s, are you still interested?", name))
	m.SetBody("text/html", html.String())
	m.AddAlternative("text/plain", body)
	return m, nil
}
