package mail

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"adclad/internal/auth/domain/repository"
	"adclad/internal/shared/logger"
)

var templates = template.Must(template.New(repository.TemplateWelcome).Parse(
	`Hi {{.FirstName}},

Welcome aboard. Your vendor account for {{.Email}} is ready.
`))

func init() {
	template.Must(templates.New(repository.TemplateForgot).Parse(
		`Hi {{.Name}},

Your password for {{.Email}} has been reset. Your new password is: {{.Password}}
`))
}

// LogMailer renders messages and writes them to the log instead of a mail
// transport. It is the development and test adapter of the Mailer port.
type LogMailer struct {
	fromName    string
	fromAddress string
	logger      logger.Logger
}

// NewLogMailer creates a mailer sending as fromName <fromAddress>
func NewLogMailer(fromName, fromAddress string, log logger.Logger) *LogMailer {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &LogMailer{
		fromName:    fromName,
		fromAddress: fromAddress,
		logger:      log.WithComponent("mailer"),
	}
}

// Render executes the named template against data
func Render(name string, data interface{}) (string, error) {
	tmpl := templates.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("unknown mail template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render mail template %q: %w", name, err)
	}
	return buf.String(), nil
}

// SendEmail renders the template and logs the message
func (m *LogMailer) SendEmail(ctx context.Context, opts repository.EmailOptions, name string, data interface{}) error {
	if opts.To.Address == "" {
		return fmt.Errorf("mail recipient address is required")
	}
	body, err := Render(name, data)
	if err != nil {
		return err
	}
	m.logger.WithContext(ctx).WithFields(map[string]interface{}{
		"from":     fmt.Sprintf("%s <%s>", m.fromName, m.fromAddress),
		"to":       fmt.Sprintf("%s <%s>", opts.To.Name, opts.To.Address),
		"subject":  opts.Subject,
		"template": name,
		"bytes":    len(body),
	}).Info("Mail dispatched")
	return nil
}

var _ repository.Mailer = (*LogMailer)(nil)
