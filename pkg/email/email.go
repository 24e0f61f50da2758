package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/domain"
)

// EmailService is the outbound notification sink. Every caller treats
// dispatch as fire-and-forget: a failed send is logged by the caller and
// never fails the business mutation that triggered it.
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

// WithdrawalEmailData notifies a recruiter that a candidate withdrew.
type WithdrawalEmailData struct {
	RecruiterName string
	CandidateName string
	JobTitle      string
}

// ContactEmailData carries a recruiter's message to a candidate.
type ContactEmailData struct {
	RecruiterName  string
	RecruiterEmail string
	Subject        string
	Message        string
}

// AlertEmailData is the job-alert digest for one saved search.
type AlertEmailData struct {
	Keyword string
	Jobs    []domain.JobSummary
}

// NewEmailService creates a new email service from SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
	}
}

const withdrawalTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Application withdrawn</h2>
    <p>Hi {{.RecruiterName}},</p>
    <p><strong>{{.CandidateName}}</strong> has withdrawn their application{{if .JobTitle}} for <strong>{{.JobTitle}}</strong>{{end}}.</p>
    <p>The record stays visible in your dashboard but can no longer change status.</p>
</body>
</html>`

const contactTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>{{.Subject}}</h2>
    <p>{{.RecruiterName}} ({{.RecruiterEmail}}) sent you a message:</p>
    <blockquote style="border-left: 4px solid #0066cc; padding-left: 12px;">{{.Message}}</blockquote>
    <p>Reply directly to this email to respond.</p>
</body>
</html>`

const alertTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>New jobs matching your saved search{{if .Keyword}} "{{.Keyword}}"{{end}}</h2>
    <ul>
    {{range .Jobs}}<li><strong>{{.Title}}</strong>{{if .Company}} at {{.Company}}{{end}}{{if .Location}} — {{.Location}}{{end}}</li>
    {{end}}</ul>
</body>
</html>`

// SendWithdrawalNotice notifies the recruiter that a candidate withdrew.
func (s *EmailService) SendWithdrawalNotice(to string, data WithdrawalEmailData) error {
	return s.send(to, "", "Application withdrawn", withdrawalTemplate, data)
}

// SendContactMessage delivers a recruiter's message to a candidate, with
// Reply-To pointing back at the recruiter.
func (s *EmailService) SendContactMessage(to string, data ContactEmailData) error {
	return s.send(to, data.RecruiterEmail, data.Subject, contactTemplate, data)
}

// SendJobAlert sends the match digest for a saved search.
func (s *EmailService) SendJobAlert(to string, data AlertEmailData) error {
	return s.send(to, "", "New jobs matching your saved search", alertTemplate, data)
}

func (s *EmailService) send(to, replyTo, subject, tmplText string, data interface{}) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email service not configured")
	}

	tmpl, err := template.New("email").Parse(tmplText)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\n", s.fromEmail, to)
	if replyTo != "" {
		headers += fmt.Sprintf("Reply-To: %s\r\n", replyTo)
	}
	msg := []byte(fmt.Sprintf(
		"%sSubject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		headers,
		subject,
		body.String(),
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
