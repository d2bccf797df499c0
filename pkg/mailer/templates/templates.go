package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

// Templates used by the email worker. Data keys are documented per template;
// missing keys render as empty strings.

const welcomeHTML = `<html><body style="font-family:sans-serif">
<h2>Welcome to {{.AppName}}{{if .DisplayName}}, {{.DisplayName}}{{end}}!</h2>
<p>Your account is ready. You can now sign in to the app with your email and the password you just set.</p>
<p style="color:#888;font-size:12px">If you did not set up this account, please contact support.</p>
</body></html>`

const passwordChangedHTML = `<html><body style="font-family:sans-serif">
<h2>Your {{.AppName}} password was changed</h2>
<p>This is a confirmation that the password for {{.Email}} was updated.</p>
<p style="color:#888;font-size:12px">If this wasn't you, reset your password immediately.</p>
</body></html>`

var registry = map[string]struct {
	subject string
	text    string
	html    *template.Template
}{
	// Data: AppName, DisplayName
	"welcome": {
		subject: "Welcome! Your account is ready",
		text:    "Your account is ready. You can now sign in with your email and password.",
		html:    template.Must(template.New("welcome").Parse(welcomeHTML)),
	},
	// Data: AppName, Email
	"password_changed": {
		subject: "Your password was changed",
		text:    "The password for your account was updated.",
		html:    template.Must(template.New("password_changed").Parse(passwordChangedHTML)),
	},
}

// Render renders a named template and returns subject, text, and html bodies.
func Render(name string, data map[string]any) (string, string, string, error) {
	t, ok := registry[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := t.html.Execute(&buf, data); err != nil {
		return "", "", "", err
	}
	return t.subject, t.text, buf.String(), nil
}
