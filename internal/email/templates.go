package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template names used by the notification fan-out.
const (
	TemplateJobAdded   = "job_added"
	TemplateJobUpdated = "job_updated"
	TemplateWelcome    = "welcome"
)

// TemplateRenderer renders the built-in HTML email templates.
type TemplateRenderer struct {
	templates map[string]*template.Template
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	tr := &TemplateRenderer{
		templates: make(map[string]*template.Template),
	}

	builtins := map[string]string{
		TemplateJobAdded:   jobAddedTemplate,
		TemplateJobUpdated: jobUpdatedTemplate,
		TemplateWelcome:    welcomeTemplate,
	}

	for name, text := range builtins {
		tpl, err := template.New(name).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		tr.templates[name] = tpl
	}

	return tr, nil
}

func (tr *TemplateRenderer) Render(name string, data TemplateData) (string, error) {
	tpl, ok := tr.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown template: %s", name)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const jobAddedTemplate = `
<h2>New Job Application Added</h2>
<p>Hi {{.UserName}},</p>
<p>You've successfully added a new job application:</p>
<ul>
  <li><strong>Company:</strong> {{.Company}}</li>
  <li><strong>Role:</strong> {{.Role}}</li>
  <li><strong>Status:</strong> {{.Status}}</li>
  <li><strong>Applied Date:</strong> {{.AppliedDate}}</li>
</ul>
<p>Good luck with your application!</p>
`

const jobUpdatedTemplate = `
<h2>Job Application Status Updated</h2>
<p>Hi {{.UserName}},</p>
<p>Your job application status has been updated:</p>
<ul>
  <li><strong>Company:</strong> {{.Company}}</li>
  <li><strong>Role:</strong> {{.Role}}</li>
  <li><strong>Previous Status:</strong> {{.OldStatus}}</li>
  <li><strong>New Status:</strong> {{.NewStatus}}</li>
</ul>
{{if .Notes}}<p><strong>Notes:</strong> {{.Notes}}</p>{{end}}
`

const welcomeTemplate = `
<h2>Welcome to JobTrack</h2>
<p>Hi {{.UserName}},</p>
<p>Your account is ready. Start tracking your job applications and we'll keep
you posted whenever a status changes.</p>
`
