package mail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromHeader(t *testing.T) {
	msg := &Message{FromName: "SolveDet Team", From: "applications@solvedet.com"}
	assert.Equal(t, `"SolveDet Team" <applications@solvedet.com>`, msg.FromHeader())

	bare := &Message{From: "applications@solvedet.com"}
	assert.Equal(t, "applications@solvedet.com", bare.FromHeader())
}

func TestBuildRFC822(t *testing.T) {
	msg := &Message{
		FromName: "SolveDet Applications",
		From:     "applications@solvedet.com",
		To:       "info@solvedet.com",
		Subject:  "New Application",
		HTMLBody: "<p>hello</p>",
	}

	raw := buildRFC822(msg)

	assert.Contains(t, raw, "From: \"SolveDet Applications\" <applications@solvedet.com>\r\n")
	assert.Contains(t, raw, "To: info@solvedet.com\r\n")
	assert.Contains(t, raw, "Subject: New Application\r\n")
	assert.Contains(t, raw, "Message-ID: <")
	assert.Contains(t, raw, "@solvedet.com>\r\n")
	assert.Contains(t, raw, "MIME-Version: 1.0\r\n")
	assert.Contains(t, raw, "Content-Type: text/html; charset=UTF-8\r\n")
	assert.True(t, strings.HasSuffix(raw, "\r\n<p>hello</p>"))

	// Headers and body separated by an empty line.
	assert.Contains(t, raw, "\r\n\r\n<p>hello</p>")
}

func TestDomainOf(t *testing.T) {
	assert.Equal(t, "solvedet.com", domainOf("a@solvedet.com"))
	assert.Equal(t, "localhost", domainOf("not-an-address"))
	assert.Equal(t, "localhost", domainOf("trailing@"))
}
