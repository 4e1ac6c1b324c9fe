package email

import "time"

// SMTPConfig holds SMTP transport settings.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
	// Timeout bounds one dial-and-send round trip. A hung SMTP server fails
	// the send instead of hanging the caller.
	Timeout time.Duration
}

func DefaultConfig() *SMTPConfig {
	return &SMTPConfig{
		Host:    "localhost",
		Port:    587,
		UseTLS:  true,
		Timeout: 10 * time.Second,
	}
}
