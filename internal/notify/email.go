// Package notify implements the downstream notification channels: the
// severity-grouped incident email digest and tracking-issue creation. Both
// consume incident data assembled by the calling agent; nothing here
// extracts anything from documents.
package notify

import (
	"bytes"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"text/template"

	"github.com/sha1n/mcp-incident-server/internal/config"
	"github.com/sha1n/mcp-incident-server/internal/incident"
)

// ErrEmailDisabled is returned when the email channel is not configured.
var ErrEmailDisabled = errors.New("email channel is disabled (smtp settings missing)")

// EmailResult is the caller-visible outcome of a send.
type EmailResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// sendFunc matches smtp.SendMail, injected for tests.
type sendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// Mailer renders and sends incident digests over SMTP.
type Mailer struct {
	settings *config.SMTPSettings
	send     sendFunc
}

// NewMailer creates a Mailer over the given SMTP settings.
func NewMailer(settings *config.SMTPSettings) *Mailer {
	return &Mailer{settings: settings, send: smtp.SendMail}
}

var digestTemplate = template.Must(template.New("digest").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(`Incident digest: {{.Total}} incident(s)
{{range .Groups}}
== {{.Severity}} ({{len .Incidents}}) ==
{{range .Incidents}}
* {{.Title}}{{if .Status}} [{{.Status}}]{{end}}
{{- if .Description}}
  {{.Description}}
{{- end}}
{{- if .AffectedSystems}}
  Affected: {{join .AffectedSystems ", "}}
{{- end}}
{{- if .Source}}
  Source: {{.Source}}
{{- end}}
{{end}}{{end}}`))

type digestGroup struct {
	Severity  incident.Severity
	Incidents []incident.Incident
}

type digestData struct {
	Total  int
	Groups []digestGroup
}

// SendDigest groups incidents by severity and mails a plain-text digest to
// the recipients. An empty recipient list falls back to the configured
// defaults. The returned error is already descriptive; callers surface it as
// a single string.
func (m *Mailer) SendDigest(incidents []incident.Incident, recipients []string) error {
	if !m.settings.Enabled {
		return ErrEmailDisabled
	}
	if len(recipients) == 0 {
		recipients = m.settings.Recipients
	}
	if len(recipients) == 0 {
		return errors.New("send digest: no recipients")
	}
	if len(incidents) == 0 {
		return errors.New("send digest: no incidents to report")
	}

	body, err := RenderDigest(incidents)
	if err != nil {
		return fmt.Errorf("send digest: %w", err)
	}

	subject := digestSubject(incidents)
	msg := buildMessage(m.settings.From, recipients, subject, body)

	addr := fmt.Sprintf("%s:%d", m.settings.Host, m.settings.Port)
	var auth smtp.Auth
	if m.settings.Username != "" {
		auth = smtp.PlainAuth("", m.settings.Username, m.settings.Password, m.settings.Host)
	}

	if err := m.send(addr, auth, m.settings.From, recipients, msg); err != nil {
		return fmt.Errorf("send digest via %s: %w", addr, err)
	}
	return nil
}

// RenderDigest renders the plain-text digest body, severities in urgency
// order, skipping empty groups.
func RenderDigest(incidents []incident.Incident) (string, error) {
	groups := incident.GroupBySeverity(incidents)

	data := digestData{Total: len(incidents)}
	for _, severity := range incident.SeverityOrder {
		if bucket := groups[severity]; len(bucket) > 0 {
			data.Groups = append(data.Groups, digestGroup{Severity: severity, Incidents: bucket})
		}
	}

	var buf bytes.Buffer
	if err := digestTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render digest: %w", err)
	}
	return buf.String(), nil
}

func digestSubject(incidents []incident.Incident) string {
	critical := 0
	for _, inc := range incidents {
		if inc.Severity == incident.SeverityCritical {
			critical++
		}
	}
	if critical > 0 {
		return fmt.Sprintf("[CRITICAL] Incident digest: %d incident(s), %d critical", len(incidents), critical)
	}
	return fmt.Sprintf("Incident digest: %d incident(s)", len(incidents))
}

// buildMessage assembles a minimal RFC 5322 message.
func buildMessage(from string, to []string, subject, body string) []byte {
	var sb strings.Builder
	sb.WriteString("From: " + from + "\r\n")
	sb.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	sb.WriteString("Subject: " + subject + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return []byte(sb.String())
}
