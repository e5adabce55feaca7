package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

var businessTmpl = template.Must(template.New("business").Parse(`<h2>New quote request</h2>
<p><strong>{{.Name}}</strong>{{if .Company}} ({{.Company}}){{end}}</p>
<p>Email: {{.Email}}<br>Phone: {{.Phone}}</p>
<p>Services: {{.ServiceList}}</p>
{{if .Quantity}}<p>Quantity: {{.Quantity}}</p>{{end}}
{{if .Dimensions}}<p>Dimensions: {{.Dimensions}}</p>{{end}}
<p>Delivery location: {{.DeliveryLocation}}</p>
{{if .Deadline}}<p>Deadline: {{.Deadline}}</p>{{end}}
{{if .Source}}<p>Heard about us via: {{.Source}}</p>{{end}}
<p>{{.Message}}</p>`))

var customerTmpl = template.Must(template.New("customer").Parse(`<p>Hi {{.Name}},</p>
<p>Thanks for contacting Rise Advertising. We received your request for {{.ServiceList}} and will get back to you with a quote shortly.</p>
<p>Your message:</p>
<blockquote>{{.Message}}</blockquote>
<p>Rise Advertising</p>`))

type emailView struct {
	QuotePayload
	ServiceList string
	Dimensions  string
}

// EmailNotifier sends a business-facing and a customer-facing e-mail.
type EmailNotifier struct {
	mailer        Mailer
	businessEmail string
}

// NewEmailNotifier sends business copies to businessEmail.
func NewEmailNotifier(mailer Mailer, businessEmail string) *EmailNotifier {
	return &EmailNotifier{mailer: mailer, businessEmail: businessEmail}
}

func (n *EmailNotifier) NotifyNewQuote(ctx context.Context, p QuotePayload) error {
	view := emailView{
		QuotePayload: p,
		ServiceList:  strings.Join(p.Services, ", "),
	}
	if p.Width != "" || p.Height != "" {
		view.Dimensions = p.Width + " x " + p.Height
	}

	var errs []error
	if n.businessEmail != "" {
		if err := n.send(ctx, n.businessEmail, "New quote request from "+p.Name, businessTmpl, view); err != nil {
			errs = append(errs, fmt.Errorf("business e-mail: %w", err))
		}
	}
	if err := n.send(ctx, p.Email, "We received your quote request", customerTmpl, view); err != nil {
		errs = append(errs, fmt.Errorf("customer e-mail: %w", err))
	}
	return errors.Join(errs...)
}

func (n *EmailNotifier) send(ctx context.Context, to, subject string, tmpl *template.Template, view emailView) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return n.mailer.Send(ctx, to, subject, buf.String())
}
