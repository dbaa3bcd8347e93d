package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Template names. These are the notification kinds of the merged email
// contract; every message goes out as HTML over the shared layout.
const (
	TemplateOtp             = "otp"
	TemplateCredentials     = "credentials"
	TemplatePasswordChanged = "password_changed"
	TemplateResetLink       = "reset_link"
	TemplatePersonnel       = "personnel_welcome"
	TemplatePickupScheduled = "pickup_scheduled"
	TemplatePickupCompleted = "pickup_completed"
	TemplatePickupRejected  = "pickup_rejected"
)

const baseLayout = `<html>
<body style="margin:0; padding:0; font-family:Arial, sans-serif; background-color:#f4f6f8;">
<div style="max-width:600px; margin:30px auto; background:#ffffff; border-radius:8px; overflow:hidden;">
<div style="background:#2e7d32; padding:20px; text-align:center; color:#ffffff;">
<h2 style="margin:0;">Smart E-Waste</h2>
<p style="margin:5px 0 0;">Responsible Recycling for a Greener Future</p>
</div>
<div style="padding:25px; color:#333;">
<h3 style="color:#2e7d32;">{{.Title}}</h3>
{{.Content}}
</div>
<div style="background:#f1f1f1; padding:15px; text-align:center; font-size:12px; color:#777;">
&copy; 2026 Smart E-Waste | All Rights Reserved
</div>
</div>
</body>
</html>`

var builtinTemplates = map[string]string{
	TemplateOtp: `<p>Your One-Time Password (OTP) is:</p>
<div style="text-align:center; margin:20px 0;">
<span style="font-size:26px; letter-spacing:6px; color:#2e7d32;"><b>{{.Otp}}</b></span>
</div>
<p>This OTP is valid for <b>5 minutes</b>. Do not share it with anyone.</p>`,

	TemplateCredentials: `<p>Hello <b>{{.Name}}</b>,</p>
<p>Your account has been approved successfully.</p>
<div style="background:#e8f5e9; padding:15px; border-left:4px solid #2e7d32;">
<p><b>Temporary Password:</b></p>
<p style="font-size:18px;"><b>{{.Password}}</b></p>
</div>
<p>Please log in and change your password immediately.</p>`,

	TemplatePasswordChanged: `<p>Hello,</p>
<p>Your Smart E-Waste account password has been changed successfully.</p>
<p>If you did not perform this action, please contact our support team immediately.</p>`,

	TemplateResetLink: `<p>Hello,</p>
<p>We received a request to reset your password. Click the link below to choose a new one:</p>
<div style="text-align:center; margin:20px 0;">
<a href="{{.ResetLink}}" style="background:#2e7d32; color:#ffffff; padding:12px 24px; text-decoration:none; border-radius:4px;">Reset Password</a>
</div>
<p>This link is valid for <b>30 minutes</b>. If you did not request a reset, you can ignore this email.</p>`,

	TemplatePersonnel: `<p>Dear <b>{{.Name}}</b>,</p>
<p>You have been successfully onboarded as Smart E-Waste staff.</p>
<div style="background:#e3f2fd; padding:15px;">
<p><b>Email:</b> {{.Email}}</p>
<p><b>Password:</b> {{.Password}}</p>
</div>
<p>Please change your password after first login.</p>`,

	TemplatePickupScheduled: `<p>Dear <b>{{.Name}}</b>,</p>
<p>Your e-waste pickup has been successfully scheduled.</p>
<table style="width:100%; border-collapse:collapse;">
<tr><td><b>Date:</b></td><td>{{.Date}}</td></tr>
<tr><td><b>Time:</b></td><td>{{.Time}}</td></tr>
<tr><td><b>Personnel:</b></td><td>{{.Personnel}}</td></tr>
</table>
<p>Please keep the items ready for collection.</p>`,

	TemplatePickupCompleted: `<p>Dear <b>{{.Name}}</b>,</p>
<p>Your e-waste pickup for <b>{{.DeviceType}}</b> has been completed.</p>
<p>Thank you for recycling responsibly.</p>`,

	TemplatePickupRejected: `<p>Dear <b>{{.Name}}</b>,</p>
<p>Unfortunately, your pickup request was not approved.</p>
<div style="background:#fdecea; padding:15px; border-left:4px solid #d32f2f;">
<p><b>Reason:</b></p>
<p>{{.Reason}}</p>
</div>
<p>You may submit a new request anytime.</p>`,
}

var templateTitles = map[string]string{
	TemplateOtp:             "OTP Verification",
	TemplateCredentials:     "Account Approved",
	TemplatePasswordChanged: "Password Changed",
	TemplateResetLink:       "Password Reset",
	TemplatePersonnel:       "Welcome Aboard",
	TemplatePickupScheduled: "Pickup Scheduled",
	TemplatePickupCompleted: "Pickup Completed",
	TemplatePickupRejected:  "Request Rejected",
}

// TemplateManager renders the built-in HTML templates inside the
// shared layout.
type TemplateManager struct {
	layout    *template.Template
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() (*TemplateManager, error) {
	layout, err := template.New("layout").Parse(baseLayout)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base layout: %w", err)
	}

	tm := &TemplateManager{
		layout:    layout,
		templates: make(map[string]*template.Template, len(builtinTemplates)),
	}

	for name, body := range builtinTemplates {
		tpl, err := template.New(name).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		tm.templates[name] = tpl
	}

	return tm, nil
}

// Render produces the full HTML body for the named template.
func (tm *TemplateManager) Render(name string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[name]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", name)
	}

	var content strings.Builder
	if err := tpl.Execute(&content, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	var out strings.Builder
	err := tm.layout.Execute(&out, map[string]interface{}{
		"Title":   templateTitles[name],
		"Content": template.HTML(content.String()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute layout: %w", err)
	}

	return out.String(), nil
}

// AddTemplate registers or replaces a named template.
func (tm *TemplateManager) AddTemplate(name, body string) error {
	tpl, err := template.New(name).Parse(body)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}
