package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template+Data or Subject with Text/HTML must be set. Bcc carries the
// newsletter broadcast recipients; single-recipient mail uses To.
type EmailJob struct {
	To       string         `json:"to,omitempty"`
	Bcc      []string       `json:"bcc,omitempty"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "reset_password", "newsletter"
	Data     map[string]any `json:"data,omitempty"`
}
