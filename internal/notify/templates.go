package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
)

var (
	receiptTmpl = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px; border: 2px solid #4CAF50;">
    <h1 style="background-color: #4CAF50; color: white; padding: 20px; text-align: center;">Donation Receipt</h1>
    <p>Dear {{.Name}},</p>
    <p>Thank you for your generous support of girls' education and football in Kibera.</p>
    <p style="font-size: 24px; color: #4CAF50; font-weight: bold; text-align: center;">{{.Currency}} {{.Amount}}</p>
    <table>
      <tr><td><strong>Date:</strong></td><td>{{.Date}}</td></tr>
      <tr><td><strong>Transaction ID:</strong></td><td>{{.TransactionID}}</td></tr>
      <tr><td><strong>Donation type:</strong></td><td>{{.DonationType}}</td></tr>
    </table>
    <p style="background-color: #fff3cd; padding: 10px; border-left: 4px solid #ffc107;">Please keep this receipt for your records.</p>
    <p style="font-size: 12px; color: #666;">ADE Community Based Organization, Kibera, Nairobi, Kenya</p>
  </div>
</body>
</html>`))

	contactConfirmTmpl = template.Must(template.New("contact-confirm").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>Thank You for Contacting Us</h2>
    <p>Dear {{.Name}},</p>
    <p>We have received your message regarding: <strong>{{.Subject}}</strong></p>
    <p>Our team will review it and get back to you as soon as possible.</p>
    <p>ADE Community Based Organization</p>
  </div>
</body>
</html>`))

	adminContactTmpl = template.Must(template.New("admin-contact").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>New Contact Form Submission</h2>
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> {{.Email}}</p>
    {{if .Phone}}<p><strong>Phone:</strong> {{.Phone}}</p>{{end}}
    <p><strong>Reason:</strong> {{.Reason}}</p>
    <p><strong>Subject:</strong> {{.Subject}}</p>
    <p><strong>Message:</strong></p>
    <p>{{.Message}}</p>
  </div>
</body>
</html>`))
)

// ReceiptData fields shown on a donation receipt
type ReceiptData struct {
	Name          string
	Amount        float64
	Currency      string
	DonationType  string
	Date          time.Time
	TransactionID string
}

// DonationReceipt renders the receipt email for to.
func DonationReceipt(to string, d ReceiptData) (Message, error) {
	html, err := render(receiptTmpl, map[string]any{
		"Name":          d.Name,
		"Amount":        fmt.Sprintf("%.2f", d.Amount),
		"Currency":      d.Currency,
		"DonationType":  d.DonationType,
		"Date":          d.Date.Format("January 2, 2006"),
		"TransactionID": d.TransactionID,
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      to,
		Subject: "Thank You for Your Donation - ADE Organization",
		Text: fmt.Sprintf("Dear %s, thank you for your donation of %s %.2f on %s. Transaction ID: %s",
			d.Name, d.Currency, d.Amount, d.Date.Format("January 2, 2006"), d.TransactionID),
		HTML: html,
	}, nil
}

// ContactConfirmation renders the acknowledgement sent to a contact submitter.
func ContactConfirmation(to, name, subject string) (Message, error) {
	html, err := render(contactConfirmTmpl, map[string]any{"Name": name, "Subject": subject})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      to,
		Subject: "We Received Your Message - ADE Organization",
		Text:    fmt.Sprintf("Dear %s, Thank you for contacting us regarding: %s. We will get back to you soon.", name, subject),
		HTML:    html,
	}, nil
}

// AdminContactData fields of the admin notification
type AdminContactData struct {
	Name    string
	Email   string
	Phone   string
	Reason  string
	Subject string
	Message string
}

// AdminContactNotification renders the staff alert for a new submission.
func AdminContactNotification(to string, d AdminContactData) (Message, error) {
	html, err := render(adminContactTmpl, d)
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      to,
		Subject: fmt.Sprintf("New Contact Form: %s - %s", strings.ToUpper(d.Reason), d.Name),
		Text:    fmt.Sprintf("New contact from %s (%s) regarding %s. Subject: %s", d.Name, d.Email, d.Reason, d.Subject),
		HTML:    html,
	}, nil
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", t.Name(), err)
	}
	return buf.String(), nil
}
