package email

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// mdRenderer is a goldmark instance configured for safe HTML output. Raw HTML
// in the markdown input is escaped (WithUnsafe is NOT set), so values
// interpolated into bodies cannot inject markup.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// RenderMarkdown converts a markdown body to HTML for sending.
func RenderMarkdown(md string) (string, error) {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render email body: %w", err)
	}
	return buf.String(), nil
}

// WelcomeBody builds the markdown body of the registration welcome email.
// The QR code referenced in the text travels as an attachment.
func WelcomeBody(fullName, username, password string) string {
	return fmt.Sprintf(`## Welcome to attendci, %s!

Your student account has been created.

- **Username:** %s
- **Password:** %s

Please change your password after the first login. Your attendance QR code is
attached; present it when entering class.
`, fullName, username, password)
}

// ResetCodeBody builds the markdown body of the password-reset email.
func ResetCodeBody(code string) string {
	return fmt.Sprintf(`Your password reset code is: **%s**

The code is valid until a new one is requested. If you did not ask for a
reset, you can ignore this message.
`, code)
}
