// Package mail provides the outbound email capability for the intake
// service: a verify-then-send Transport interface with SMTP and SES
// implementations.
package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Message is a single outbound email unit.
type Message struct {
	FromName string `json:"fromName"`
	From     string `json:"from"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"htmlBody"`
}

// Transport verifies provider credentials and delivers messages. Verify is
// expected to be called once per request before any Send so that content is
// never composed for a transport that cannot deliver it.
type Transport interface {
	Verify(ctx context.Context) error
	Send(ctx context.Context, msg *Message) error
}

// FromHeader formats the sender as a display name plus address.
func (m *Message) FromHeader() string {
	if m.FromName == "" {
		return m.From
	}
	return fmt.Sprintf("%q <%s>", m.FromName, m.From)
}

// buildRFC822 assembles the raw wire message for SMTP delivery.
func buildRFC822(msg *Message) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("From: %s\r\n", msg.FromHeader()))
	builder.WriteString(fmt.Sprintf("To: %s\r\n", msg.To))
	builder.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	builder.WriteString(fmt.Sprintf("Message-ID: <%s@%s>\r\n", uuid.New().String(), domainOf(msg.From)))
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(msg.HTMLBody)

	return builder.String()
}

func domainOf(address string) string {
	if i := strings.LastIndex(address, "@"); i >= 0 && i < len(address)-1 {
		return address[i+1:]
	}
	return "localhost"
}
