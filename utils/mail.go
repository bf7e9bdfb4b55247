package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"
	"strings"
)

type EmailData struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

var inquiryTemplate = template.Must(template.New("inquiry").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <h2>New website inquiry</h2>
  <p><strong>From:</strong> {{.Name}} &lt;{{.Email}}&gt;</p>
  {{if .Phone}}<p><strong>Phone:</strong> {{.Phone}}</p>{{end}}
  {{if .Subject}}<p><strong>Subject:</strong> {{.Subject}}</p>{{end}}
  <p style="white-space: pre-wrap;">{{.Message}}</p>
</body>
</html>`))

// MailConfigured reports whether the SMTP environment is complete.
func MailConfigured() bool {
	return os.Getenv("FROM_EMAIL") != "" && os.Getenv("SMTP_ADDRESS") != ""
}

func RenderInquiryEmail(data EmailData) (string, error) {
	var body bytes.Buffer
	if err := inquiryTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("template execution error: %w", err)
	}
	return body.String(), nil
}

func SendEmail(emailTo string, emailSubject string, data EmailData) error {
	body, err := RenderInquiryEmail(data)
	if err != nil {
		return err
	}

	message := buildMessage(os.Getenv("FROM_EMAIL"), data.Email, emailSubject, body)

	auth := smtp.PlainAuth(
		"",
		os.Getenv("FROM_EMAIL"),
		os.Getenv("FROM_EMAIL_PASSWORD"),
		os.Getenv("FROM_EMAIL_SMTP"),
	)

	err = smtp.SendMail(os.Getenv("SMTP_ADDRESS"), auth, os.Getenv("FROM_EMAIL"), []string{emailTo}, []byte(message))
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

var headerBreaks = strings.NewReplacer("\r", "", "\n", "")

// buildMessage assembles the raw mail. Header values lose any line breaks so
// submitted text cannot add headers.
func buildMessage(from, replyTo, subject, body string) string {
	return fmt.Sprintf(
		"From: %s\r\nReply-To: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		headerBreaks.Replace(from),
		headerBreaks.Replace(replyTo),
		headerBreaks.Replace(subject),
		body,
	)
}
