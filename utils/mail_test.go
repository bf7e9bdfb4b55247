package utils

import (
	"strings"
	"testing"
)

func TestRenderInquiryEmail(t *testing.T) {
	body, err := RenderInquiryEmail(EmailData{
		Name:    "Jane <Admin>",
		Email:   "jane@example.com",
		Subject: "Quote",
		Message: "Need 20 units.",
	})
	if err != nil {
		t.Fatalf("RenderInquiryEmail: %v", err)
	}
	if !strings.Contains(body, "Need 20 units.") || !strings.Contains(body, "Quote") {
		t.Fatalf("body missing fields: %s", body)
	}
	if strings.Contains(body, "<Admin>") {
		t.Fatal("user input must be escaped")
	}
	if strings.Contains(body, "Phone:") {
		t.Fatal("empty phone must be omitted")
	}
}

func TestMailConfigured(t *testing.T) {
	t.Setenv("FROM_EMAIL", "")
	t.Setenv("SMTP_ADDRESS", "")
	if MailConfigured() {
		t.Fatal("empty environment must not count as configured")
	}

	t.Setenv("FROM_EMAIL", "site@example.com")
	t.Setenv("SMTP_ADDRESS", "smtp.example.com:587")
	if !MailConfigured() {
		t.Fatal("expected mail to be configured")
	}
}

func TestBuildMessageKeepsHeadersOnOneLine(t *testing.T) {
	msg := buildMessage("site@example.com", "jane@example.com\r\nBcc: all@example.com", "New inquiry: hi\r\nX-Injected: yes", "<p>body</p>")

	head, body, ok := strings.Cut(msg, "\r\n\r\n")
	if !ok || body != "<p>body</p>" {
		t.Fatalf("malformed message: %q", msg)
	}
	lines := strings.Split(head, "\r\n")
	if len(lines) != 5 {
		t.Fatalf("want 5 header lines, got %d: %q", len(lines), lines)
	}
	for _, line := range lines {
		if strings.HasPrefix(line, "X-Injected") || strings.HasPrefix(line, "Bcc") {
			t.Fatalf("submitted text became a header: %q", line)
		}
	}
	if lines[2] != "Subject: New inquiry: hiX-Injected: yes" {
		t.Fatalf("subject = %q", lines[2])
	}
}
