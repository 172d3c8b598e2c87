package notify

import (
	"bytes"
	"fmt"
	"html/template"
)

type emailTemplate struct {
	subject string
	body    *template.Template
}

const signature = `<p>The Tech Innovators Club Team</p>`

var templates = map[Kind]emailTemplate{
	KindWelcome: {
		subject: "Welcome to Tech Innovators Club!",
		body: template.Must(template.New("welcome").Parse(`<h2>Welcome to Tech Innovators Club, {{.RecipientName}}!</h2>
<p>We're excited to have you join our community of technology enthusiasts.</p>
<ul>
  <li>Complete your profile to connect with like-minded innovators</li>
  <li>Explore projects shared by other members</li>
  <li>Submit your own projects to showcase your work</li>
</ul>
<p>Happy innovating!</p>` + signature)),
	},
	KindProjectApproved: {
		subject: "Your Project Has Been Approved!",
		body: template.Must(template.New("approved").Parse(`<h2>Congratulations, {{.RecipientName}}!</h2>
<p>Your project "<strong>{{.ProjectTitle}}</strong>" has been approved by our moderation team.</p>
<p>It is now visible to the entire club.</p>` + signature)),
	},
	KindProjectRejected: {
		subject: "Project Submission Update",
		body: template.Must(template.New("rejected").Parse(`<h2>Hello, {{.RecipientName}}</h2>
<p>We've reviewed your project "<strong>{{.ProjectTitle}}</strong>" and have decided not to approve it at this time.</p>
{{if .Reason}}<p><strong>Reason:</strong> {{.Reason}}</p>{{end}}
<p>Please feel free to revise your project and resubmit it for review.</p>` + signature)),
	},
	KindProjectLiked: {
		subject: "Someone Liked Your Project!",
		body: template.Must(template.New("liked").Parse(`<h2>Great news, {{.RecipientName}}!</h2>
<p><strong>{{.ActorName}}</strong> liked your project "<strong>{{.ProjectTitle}}</strong>".</p>
<p>Keep building amazing things!</p>` + signature)),
	},
}

// Render builds the email for msg from its kind's template.
func Render(msg Message) (Email, error) {
	if msg.RecipientMail == "" {
		return Email{}, fmt.Errorf("notification %q has no recipient", msg.Kind)
	}

	tmpl, ok := templates[msg.Kind]
	if !ok {
		return Email{}, fmt.Errorf("unknown notification kind %q", msg.Kind)
	}

	var buf bytes.Buffer
	if err := tmpl.body.Execute(&buf, msg); err != nil {
		return Email{}, fmt.Errorf("render %s: %w", msg.Kind, err)
	}

	return Email{To: msg.RecipientMail, Subject: tmpl.subject, HTML: buf.String()}, nil
}
