package email

import (
	"time"

	"ewaste_backend/internal/logger"
)

// Notifier is the notification contract consumed by the services. All
// sends are fire-and-forget: a delivery failure is logged and never
// propagated to the operation that triggered it.
type Notifier interface {
	SendOtp(to, code string)
	SendCredentials(to, name, tempPassword string)
	SendPasswordChanged(to string)
	SendPasswordResetLink(to, link string)
	SendPersonnelWelcome(to, name, tempPassword string)
	SendPickupScheduled(to, name string, date time.Time, pickupTime, personnel string)
	SendPickupCompleted(to, name, deviceType string)
	SendRequestRejected(to, name, reason string)
}

// Dispatcher hands a message off for asynchronous delivery. Enqueue
// must not block the caller.
type Dispatcher interface {
	Enqueue(kind string, msg *Email)
}

var templateSubjects = map[string]string{
	TemplateOtp:             "Your OTP for Smart E-Waste Verification",
	TemplateCredentials:     "Welcome to Smart E-Waste – Account Approved",
	TemplatePasswordChanged: "Password Changed Successfully – Smart E-Waste",
	TemplateResetLink:       "Reset Your Smart E-Waste Password",
	TemplatePersonnel:       "Welcome to Smart E-Waste Team",
	TemplatePickupScheduled: "Your E-Waste Pickup Is Scheduled",
	TemplatePickupCompleted: "Your E-Waste Pickup Is Completed",
	TemplatePickupRejected:  "Update on Your Pickup Request",
}

// TemplateNotifier renders the HTML templates and hands messages to
// the dispatcher.
type TemplateNotifier struct {
	templates  *TemplateManager
	dispatcher Dispatcher
}

func NewTemplateNotifier(templates *TemplateManager, dispatcher Dispatcher) *TemplateNotifier {
	return &TemplateNotifier{
		templates:  templates,
		dispatcher: dispatcher,
	}
}

func (n *TemplateNotifier) send(kind, to string, data TemplateData) {
	htmlBody, err := n.templates.Render(kind, data)
	if err != nil {
		// A broken template is a bug, but it must not fail the
		// operation that triggered the notification.
		logger.Error("failed to render email template", "template", kind, "error", err.Error())
		return
	}

	n.dispatcher.Enqueue(kind, &Email{
		To:       []string{to},
		Subject:  templateSubjects[kind],
		HTMLBody: htmlBody,
	})
}

func (n *TemplateNotifier) SendOtp(to, code string) {
	n.send(TemplateOtp, to, TemplateData{"Otp": code})
}

func (n *TemplateNotifier) SendCredentials(to, name, tempPassword string) {
	n.send(TemplateCredentials, to, TemplateData{
		"Name":     name,
		"Password": tempPassword,
	})
}

func (n *TemplateNotifier) SendPasswordChanged(to string) {
	n.send(TemplatePasswordChanged, to, TemplateData{})
}

func (n *TemplateNotifier) SendPasswordResetLink(to, link string) {
	n.send(TemplateResetLink, to, TemplateData{"ResetLink": link})
}

func (n *TemplateNotifier) SendPersonnelWelcome(to, name, tempPassword string) {
	n.send(TemplatePersonnel, to, TemplateData{
		"Name":     name,
		"Email":    to,
		"Password": tempPassword,
	})
}

func (n *TemplateNotifier) SendPickupScheduled(to, name string, date time.Time, pickupTime, personnel string) {
	n.send(TemplatePickupScheduled, to, TemplateData{
		"Name":      name,
		"Date":      date.Format("2006-01-02"),
		"Time":      pickupTime,
		"Personnel": personnel,
	})
}

func (n *TemplateNotifier) SendPickupCompleted(to, name, deviceType string) {
	n.send(TemplatePickupCompleted, to, TemplateData{
		"Name":       name,
		"DeviceType": deviceType,
	})
}

func (n *TemplateNotifier) SendRequestRejected(to, name, reason string) {
	n.send(TemplatePickupRejected, to, TemplateData{
		"Name":   name,
		"Reason": reason,
	})
}

// NoopNotifier discards every notification. Used when SMTP is not
// configured (local development).
type NoopNotifier struct{}

func (NoopNotifier) SendOtp(to, code string) {
	logger.Warn("email disabled, dropping OTP mail", "to", to)
}
func (NoopNotifier) SendCredentials(to, name, tempPassword string) {}

func (NoopNotifier) SendPasswordChanged(to string) {}

func (NoopNotifier) SendPasswordResetLink(to, link string) {}

func (NoopNotifier) SendPersonnelWelcome(to, name, tempPassword string) {}

func (NoopNotifier) SendPickupScheduled(to, name string, date time.Time, pickupTime, personnel string) {
}

func (NoopNotifier) SendPickupCompleted(to, name, deviceType string) {}

func (NoopNotifier) SendRequestRejected(to, name, reason string) {}

var _ Notifier = (*TemplateNotifier)(nil)
var _ Notifier = NoopNotifier{}
