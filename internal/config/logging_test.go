package config

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLog(t *testing.T) {
	// Just verify it doesn't panic
	s := &Settings{
		Transport: "sse",
		Host:      "localhost",
		Port:      8080,
		Auth: AuthSettings{
			Type: AuthTypeNone,
		},
	}
	Log(s) // Should not panic
}

func TestLogWithLogger_StdioTransport(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := &Settings{
		Transport: "stdio",
		Host:      "localhost",
		Port:      8080,
		Auth: AuthSettings{
			Type: AuthTypeNone,
		},
	}

	LogWithLogger(s, logger)

	output := buf.String()
	if !strings.Contains(output, "transport") {
		t.Error("Expected 'transport' in log output")
	}
	// stdio transport should not log host/port
	if strings.Contains(output, "Config: host") {
		t.Error("Expected no host in log output for stdio transport")
	}
}

func TestLogWithLogger_SSETransport(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := &Settings{
		Transport: "sse",
		Host:      "localhost",
		Port:      8080,
		Auth: AuthSettings{
			Type: AuthTypeNone,
		},
	}

	LogWithLogger(s, logger)

	output := buf.String()
	if !strings.Contains(output, "transport") {
		t.Error("Expected 'transport' in log output")
	}
	if !strings.Contains(output, "Config: host") {
		t.Error("Expected host in log output for SSE transport")
	}
	if !strings.Contains(output, "Config: port") {
		t.Error("Expected port in log output for SSE transport")
	}
}

func TestLogWithLogger_BasicAuth(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := &Settings{
		Transport: "stdio",
		Auth: AuthSettings{
			Type: AuthTypeBasic,
			Basic: BasicAuthSettings{
				Username: "admin",
				Password: "secret",
			},
		},
	}

	LogWithLogger(s, logger)

	output := buf.String()
	if !strings.Contains(output, "admin") {
		t.Error("Expected username in log output")
	}
	if !strings.Contains(output, "****") {
		t.Error("Expected masked password in log output")
	}
	if strings.Contains(output, "secret") {
		t.Error("Password should be masked, not shown in plain text")
	}
}

func TestLogWithLogger_GitHubTokenMasked(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := &Settings{
		Transport: "stdio",
		Auth:      AuthSettings{Type: AuthTypeNone},
		GitHub: GitHubSettings{
			Token:   "ghp_supersecret",
			RawHost: DefaultRawHost,
		},
	}

	LogWithLogger(s, logger)

	output := buf.String()
	if strings.Contains(output, "ghp_supersecret") {
		t.Error("GitHub token should be masked, not shown in plain text")
	}
	if !strings.Contains(output, "****") {
		t.Error("Expected masked token in log output")
	}
	if !strings.Contains(output, DefaultRawHost) {
		t.Error("Expected raw host in log output")
	}
}

func TestLogWithLogger_SMTPPasswordMasked(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := &Settings{
		Transport: "stdio",
		Auth:      AuthSettings{Type: AuthTypeNone},
		SMTP: SMTPSettings{
			Enabled:    true,
			Host:       "smtp.example.com",
			Port:       587,
			From:       "alerts@example.com",
			Username:   "mailer",
			Password:   "smtp-secret",
			Recipients: []string{"oncall@example.com"},
		},
	}

	LogWithLogger(s, logger)

	output := buf.String()
	if !strings.Contains(output, "smtp.example.com") {
		t.Error("Expected smtp host in log output")
	}
	if strings.Contains(output, "smtp-secret") {
		t.Error("SMTP password should be masked, not shown in plain text")
	}
	if strings.Contains(output, "oncall@example.com") {
		t.Error("Recipient addresses should not be logged, only their count")
	}
}

func TestLogWithLogger_SMTPDisabledLogsNothingElse(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := &Settings{
		Transport: "stdio",
		Auth:      AuthSettings{Type: AuthTypeNone},
		SMTP: SMTPSettings{
			Enabled: false,
			Host:    "smtp.example.com",
		},
	}

	LogWithLogger(s, logger)

	if strings.Contains(buf.String(), "smtp.host") {
		t.Error("Expected no smtp detail logging when the channel is disabled")
	}
}

func TestMaskSecret(t *testing.T) {
	if maskSecret("") != "" {
		t.Error("Expected empty mask for empty value")
	}
	if maskSecret("anything") != "****" {
		t.Error("Expected '****' for non-empty value")
	}
}

func TestSettingsLogValue(t *testing.T) {
	s := Settings{
		Transport: "sse",
		Host:      "localhost",
		Port:      8080,
		Auth: AuthSettings{
			Type:    AuthTypeAPIKey,
			APIKeys: []string{"key1"},
		},
		GitHub: GitHubSettings{Token: "secret", RawHost: DefaultRawHost},
	}

	val := SettingsLogValue(s)
	if val.Kind() != slog.KindGroup {
		t.Errorf("Expected group kind, got %v", val.Kind())
	}
}

func TestAuthSettingsLogValue(t *testing.T) {
	s := AuthSettings{
		Type:    AuthTypeAPIKey,
		APIKeys: []string{"key1", "key2"},
		Basic: BasicAuthSettings{
			Username: "user",
			Password: "pass",
		},
	}

	val := AuthSettingsLogValue(s)
	if val.Kind() != slog.KindGroup {
		t.Errorf("Expected group kind, got %v", val.Kind())
	}
}
