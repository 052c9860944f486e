package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var welcomeHTML = template.Must(template.New(TemplateWelcome).Parse(`
<html>
  <body style="font-family: sans-serif">
    <h2>Welcome to DevConnector, {{.Name}}!</h2>
    <p>Your account is ready. Head over and create your developer profile so
    other members can find you.</p>
  </body>
</html>`))

var accountDeletedHTML = template.Must(template.New(TemplateAccountDeleted).Parse(`
<html>
  <body style="font-family: sans-serif">
    <h2>Goodbye{{if .Name}}, {{.Name}}{{end}}</h2>
    <p>Your DevConnector account, profile and posts have been permanently
    deleted. We are sorry to see you go.</p>
  </body>
</html>`))

// Render produces subject, text and html bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	var tpl *template.Template
	switch name {
	case TemplateWelcome:
		subject = "Welcome to DevConnector"
		text = "Welcome to DevConnector! Your account is ready."
		tpl = welcomeHTML
	case TemplateAccountDeleted:
		subject = "Your DevConnector account was deleted"
		text = "Your DevConnector account, profile and posts have been deleted."
		tpl = accountDeletedHTML
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", "", "", err
	}
	return subject, text, buf.String(), nil
}
