// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// ConfirmationEmailData holds data for registration-confirmation email templates.
type ConfirmationEmailData struct {
	UserName         string
	EventTitle       string
	EventDate        string
	EventLocation    string
	EventDescription string
}

// BuildConfirmationEmail creates a registration confirmation with both HTML and text bodies.
func BuildConfirmationEmail(data ConfirmationEmailData) Email {
	if data.UserName == "" {
		data.UserName = "there"
	}
	return Email{
		To:       "", // Set by caller
		Subject:  fmt.Sprintf("Registration Confirmation: %s", data.EventTitle),
		TextBody: buildConfirmationText(data),
		HTMLBody: buildConfirmationHTML(data),
	}
}

func buildConfirmationText(data ConfirmationEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Registration Confirmation: %s\n\n", data.EventTitle))
	buf.WriteString(fmt.Sprintf("Hi %s,\n\n", data.UserName))
	buf.WriteString(fmt.Sprintf("You've successfully registered for: %s\n\n", data.EventTitle))
	if data.EventDate != "" {
		buf.WriteString(fmt.Sprintf("Date & Time: %s\n", data.EventDate))
	}
	if data.EventLocation != "" {
		buf.WriteString(fmt.Sprintf("Location: %s\n", data.EventLocation))
	}
	buf.WriteString("\nWe're excited to have you join us!\n\n")
	buf.WriteString("Best regards,\nThe Acadia Hub Team\n")
	return buf.String()
}

func buildConfirmationHTML(data ConfirmationEmailData) string {
	tmpl := template.Must(template.New("confirmation").Parse(confirmationHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const confirmationHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Registration Confirmed</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; line-height: 1.6; color: #333; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 600px;">
          <!-- Header -->
          <tr>
            <td style="background: linear-gradient(135deg, #6366f1 0%, #7c3aed 100%); color: #ffffff; padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
              <h1 style="margin: 0; font-size: 24px;">Registration Confirmed!</h1>
              <p style="margin: 8px 0 0;">You're all set for this event</p>
            </td>
          </tr>

          <!-- Content -->
          <tr>
            <td style="background: #f9fafb; padding: 30px; border-radius: 0 0 10px 10px;">
              <p style="margin: 0 0 16px;">Hi {{.UserName}},</p>
              <p style="margin: 0 0 16px;">Great news! You've successfully registered for the following event:</p>

              <!-- Event Card -->
              <div style="background: #ffffff; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #6366f1;">
                <h2 style="margin-top: 0; color: #6366f1;">{{.EventTitle}}</h2>
                {{if .EventDate}}
                <div style="margin: 10px 0; padding: 8px 0; border-bottom: 1px solid #e5e7eb;">
                  <strong>Date &amp; Time:</strong> {{.EventDate}}
                </div>
                {{end}}
                {{if .EventLocation}}
                <div style="margin: 10px 0; padding: 8px 0; border-bottom: 1px solid #e5e7eb;">
                  <strong>Location:</strong> {{.EventLocation}}
                </div>
                {{end}}
                {{if .EventDescription}}
                <div style="margin: 10px 0; padding: 8px 0;">
                  <strong>Description:</strong><br>
                  {{.EventDescription}}
                </div>
                {{end}}
              </div>

              <p style="margin: 0 0 16px;">We're excited to have you join us! Make sure to mark your calendar and we'll see you there.</p>
              <p style="margin: 0 0 16px;">If you have any questions or need to make changes to your registration, please contact the event organizer.</p>

              <!-- Footer -->
              <div style="text-align: center; margin-top: 30px; color: #6b7280; font-size: 12px;">
                <p style="margin: 0;">Best regards,<br>The Acadia Hub Team</p>
                <p style="margin: 20px 0 0; font-size: 11px;">This is an automated email. Please do not reply to this message.</p>
              </div>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
