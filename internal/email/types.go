package email

// Message is one outbound email.
type Message struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData feeds the HTML templates.
type TemplateData map[string]interface{}

// Provider sends email. Implementations return an error on failure; callers
// decide whether the failure is fatal (the notification fan-out swallows it).
type Provider interface {
	// Send delivers a prepared message.
	Send(msg *Message) error

	// SendTemplate renders the named template and delivers the result.
	SendTemplate(to []string, subject, templateName string, data TemplateData) error

	// Close releases provider resources.
	Close() error
}
