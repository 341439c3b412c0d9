package services

import (
	"bytes"
	"fmt"
	"html/template"

	"artloop/internal/models"
)

// RegistrationMailer composes registration and order emails and hands them to
// a NotificationSender for delivery.
type RegistrationMailer struct {
	sender      NotificationSender
	adminEmails []string
	templates   map[string]*template.Template
}

// NewRegistrationMailer creates a mailer. adminEmails is the fixed
// operational recipient list copied on every host alert.
func NewRegistrationMailer(sender NotificationSender, adminEmails []string) *RegistrationMailer {
	m := &RegistrationMailer{
		sender:      sender,
		adminEmails: adminEmails,
		templates:   make(map[string]*template.Template),
	}
	m.loadTemplates()
	return m
}

func (m *RegistrationMailer) loadTemplates() {
	m.templates["registration_confirmation"] = template.Must(
		template.New("registration_confirmation").Parse(registrationConfirmationHTML))
	m.templates["host_alert"] = template.Must(
		template.New("host_alert").Parse(hostAlertHTML))
	m.templates["order_confirmation"] = template.Must(
		template.New("order_confirmation").Parse(orderConfirmationHTML))
}

// registrationEmailData feeds the registration templates
type registrationEmailData struct {
	Registration    *models.Registration
	VerificationURL string
	QRCodeDataURL   template.URL
}

// SendRegistrationConfirmation emails the buyer their registration code and,
// when rendering succeeded, the QR verification image
func (m *RegistrationMailer) SendRegistrationConfirmation(reg *models.Registration, verificationURL, qrCodeDataURL string) error {
	body, err := m.render("registration_confirmation", registrationEmailData{
		Registration:    reg,
		VerificationURL: verificationURL,
		QRCodeDataURL:   template.URL(qrCodeDataURL),
	})
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Registration Confirmation - %s", reg.EventTitle)
	return m.sender.Send([]string{reg.CustomerEmail}, subject, body)
}

// SendHostAlert notifies the event host and the administrative recipients of
// a new registration
func (m *RegistrationMailer) SendHostAlert(reg *models.Registration, hostEmail string) error {
	recipients := make([]string, 0, len(m.adminEmails)+1)
	if hostEmail != "" {
		recipients = append(recipients, hostEmail)
	}
	recipients = append(recipients, m.adminEmails...)
	if len(recipients) == 0 {
		return nil
	}

	body, err := m.render("host_alert", registrationEmailData{Registration: reg})
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("New Registration - %s - %s", reg.EventTitle, reg.CustomerName)
	return m.sender.Send(recipients, subject, body)
}

// OrderConfirmation holds the fields of a paid-order confirmation email
type OrderConfirmation struct {
	OrderID        string  `json:"orderID"`
	CustomerName   string  `json:"customerName"`
	CustomerEmail  string  `json:"customerEmail"`
	CustomerPhone  string  `json:"customerPhone"`
	EventTitle     string  `json:"eventTitle"`
	EventDate      string  `json:"eventDate"`
	EventTime      string  `json:"eventTime"`
	EventVenue     string  `json:"eventVenue"`
	TicketQuantity int     `json:"ticketQuantity"`
	TotalAmount    float64 `json:"totalAmount"`
	PaymentStatus  string  `json:"paymentStatus"`
}

// Validate checks the required order confirmation fields
func (o *OrderConfirmation) Validate() error {
	var missing []string
	if o.OrderID == "" {
		missing = append(missing, "orderID")
	}
	if o.CustomerName == "" {
		missing = append(missing, "customerName")
	}
	if o.CustomerEmail == "" {
		missing = append(missing, "customerEmail")
	}
	if o.EventTitle == "" {
		missing = append(missing, "eventTitle")
	}
	if o.TicketQuantity <= 0 {
		missing = append(missing, "ticketQuantity")
	}
	if o.TotalAmount <= 0 {
		missing = append(missing, "totalAmount")
	}
	if len(missing) > 0 {
		return &models.ValidationError{Fields: missing}
	}
	return nil
}

// SendOrderConfirmation emails a paid-order summary to the customer and a
// copy to the administrative recipients
func (m *RegistrationMailer) SendOrderConfirmation(order *OrderConfirmation) error {
	body, err := m.render("order_confirmation", order)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Order Confirmation - %s", order.EventTitle)
	if err := m.sender.Send([]string{order.CustomerEmail}, subject, body); err != nil {
		return err
	}

	if len(m.adminEmails) > 0 {
		adminSubject := fmt.Sprintf("New Order Alert - %s - %s", order.EventTitle, order.CustomerName)
		if err := m.sender.Send(m.adminEmails, adminSubject, body); err != nil {
			return err
		}
	}

	return nil
}

func (m *RegistrationMailer) render(name string, data interface{}) (string, error) {
	tmpl, ok := m.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown email template: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email template %s: %w", name, err)
	}

	return buf.String(), nil
}

const registrationConfirmationHTML = `
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #4a5568; color: white; padding: 20px; text-align: center; }
        .content { background-color: #f7fafc; padding: 20px; border: 1px solid #e2e8f0; }
        .code { font-size: 28px; letter-spacing: 4px; text-align: center; font-weight: bold; margin: 20px 0; }
        .detail-row { display: flex; justify-content: space-between; padding: 8px 0; border-bottom: 1px solid #e2e8f0; }
        .detail-label { font-weight: bold; }
        .qr { text-align: center; margin: 20px 0; }
        .footer { text-align: center; padding: 20px; color: #718096; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>ArtLoop - Registration Confirmation</h1>
        </div>
        <div class="content">
            <h2>Thank you for registering, {{.Registration.CustomerName}}!</h2>
            <p>Your registration code:</p>
            <div class="code">{{.Registration.RegistrationCode}}</div>
            {{if .QRCodeDataURL}}
            <div class="qr">
                <p>Show this QR code at the venue entrance:</p>
                <img src="{{.QRCodeDataURL}}" alt="Registration QR code" width="300" height="300" />
            </div>
            {{end}}
            <div class="detail-row">
                <span class="detail-label">Event:</span>
                <span>{{.Registration.EventTitle}}</span>
            </div>
            {{if .Registration.EventDate}}
            <div class="detail-row">
                <span class="detail-label">Date:</span>
                <span>{{.Registration.EventDate}}</span>
            </div>
            {{end}}
            {{if .Registration.EventTime}}
            <div class="detail-row">
                <span class="detail-label">Time:</span>
                <span>{{.Registration.EventTime}}</span>
            </div>
            {{end}}
            {{if .Registration.EventVenue}}
            <div class="detail-row">
                <span class="detail-label">Venue:</span>
                <span>{{.Registration.EventVenue}}</span>
            </div>
            {{end}}
            <div class="detail-row">
                <span class="detail-label">Number of Attendees:</span>
                <span>{{.Registration.TicketQuantity}}</span>
            </div>
            <p>Please bring this confirmation or your registration code to the venue entrance.</p>
        </div>
        <div class="footer">
            <p>This is an automated email. Please do not reply.</p>
        </div>
    </div>
</body>
</html>
`

const hostAlertHTML = `
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #2d3748; color: white; padding: 20px; text-align: center; }
        .content { background-color: #f7fafc; padding: 20px; border: 1px solid #e2e8f0; }
        .detail-row { display: flex; justify-content: space-between; padding: 8px 0; border-bottom: 1px solid #e2e8f0; }
        .detail-label { font-weight: bold; }
        .alert { background-color: #edf2f7; padding: 10px; border-left: 4px solid #4299e1; margin: 15px 0; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New Registration</h1>
        </div>
        <div class="content">
            <div class="alert"><strong>New event registration received!</strong></div>
            <div class="detail-row">
                <span class="detail-label">Registration Code:</span>
                <span>{{.Registration.RegistrationCode}}</span>
            </div>
            <div class="detail-row">
                <span class="detail-label">Customer Name:</span>
                <span>{{.Registration.CustomerName}}</span>
            </div>
            <div class="detail-row">
                <span class="detail-label">Customer Email:</span>
                <span>{{.Registration.CustomerEmail}}</span>
            </div>
            {{if .Registration.CustomerPhone}}
            <div class="detail-row">
                <span class="detail-label">Customer Phone:</span>
                <span>{{.Registration.CustomerPhone}}</span>
            </div>
            {{end}}
            <div class="detail-row">
                <span class="detail-label">Event:</span>
                <span>{{.Registration.EventTitle}}</span>
            </div>
            <div class="detail-row">
                <span class="detail-label">Attendees:</span>
                <span>{{.Registration.TicketQuantity}}</span>
            </div>
        </div>
    </div>
</body>
</html>
`

const orderConfirmationHTML = `
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #4a5568; color: white; padding: 20px; text-align: center; }
        .content { background-color: #f7fafc; padding: 20px; border: 1px solid #e2e8f0; }
        .detail-row { display: flex; justify-content: space-between; padding: 8px 0; border-bottom: 1px solid #e2e8f0; }
        .detail-label { font-weight: bold; }
        .footer { text-align: center; padding: 20px; color: #718096; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>ArtLoop - Payment Confirmation</h1>
        </div>
        <div class="content">
            <h2>Thank you for your purchase, {{.CustomerName}}!</h2>
            <div class="detail-row">
                <span class="detail-label">Order ID:</span>
                <span>{{.OrderID}}</span>
            </div>
            <div class="detail-row">
                <span class="detail-label">Event:</span>
                <span>{{.EventTitle}}</span>
            </div>
            {{if .EventDate}}
            <div class="detail-row">
                <span class="detail-label">Date:</span>
                <span>{{.EventDate}}</span>
            </div>
            {{end}}
            {{if .EventTime}}
            <div class="detail-row">
                <span class="detail-label">Time:</span>
                <span>{{.EventTime}}</span>
            </div>
            {{end}}
            {{if .EventVenue}}
            <div class="detail-row">
                <span class="detail-label">Venue:</span>
                <span>{{.EventVenue}}</span>
            </div>
            {{end}}
            <div class="detail-row">
                <span class="detail-label">Number of Tickets:</span>
                <span>{{.TicketQuantity}}</span>
            </div>
            <div class="detail-row">
                <span class="detail-label">Total Amount:</span>
                <span><strong>${{printf "%.2f" .TotalAmount}}</strong></span>
            </div>
            <div class="detail-row">
                <span class="detail-label">Payment Status:</span>
                <span><strong>{{.PaymentStatus}}</strong></span>
            </div>
            <p>Please bring this confirmation email or show the order ID at the venue entrance.</p>
        </div>
        <div class="footer">
            <p>This is an automated email. Please do not reply.</p>
        </div>
    </div>
</body>
</html>
`
