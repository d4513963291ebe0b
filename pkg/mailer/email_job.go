package mailer

import "github.com/photobook/user-image-service/pkg/mailer/templates"

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template+Data or Subject with Text/HTML is set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// WelcomeJob builds the job queued after a user registers
func WelcomeJob(appName, loginURL, email, username, role string) EmailJob {
	return EmailJob{
		To:       email,
		Template: templates.Welcome,
		Data: templates.ToMap(templates.EmailData{
			Name:     username,
			Email:    email,
			Role:     role,
			AppName:  appName,
			LoginURL: loginURL,
		}),
	}
}

// Resolve renders the job's template when one is set
func (j EmailJob) Resolve() (subject, text, html string, err error) {
	if j.Template == "" {
		return j.Subject, j.Text, j.HTML, nil
	}
	return templates.Render(j.Template, templates.FromMap(j.Data))
}
