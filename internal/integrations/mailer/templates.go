package mailer

import (
	"fmt"
	"time"
)

// OTPMessage письмо с одноразовым кодом
func OTPMessage(toEmail, toName, purpose, code string, ttl time.Duration) Message {
	var subject, action string
	switch purpose {
	case "verify_email":
		subject, action = "Confirm your email", "confirm your email address"
	case "reset_password":
		subject, action = "Reset your password", "reset your password"
	default:
		subject, action = "Your login code", "finish signing in"
	}

	text := fmt.Sprintf(
		"Hi %s,\n\nUse the code %s to %s. It expires in %d minutes.\n\nIf you did not request this, ignore this email.\n",
		displayName(toName), code, action, int(ttl.Minutes()),
	)

	return Message{
		ToEmail: toEmail,
		ToName:  toName,
		Subject: subject,
		Text:    text,
		HTML:    fmt.Sprintf("<p>Hi %s,</p><p>Use the code <strong>%s</strong> to %s. It expires in %d minutes.</p>", displayName(toName), code, action, int(ttl.Minutes())),
	}
}

// BookingStatusMessage уведомление студента о смене статуса бронирования
func BookingStatusMessage(toEmail, toName, title, status string, reason *string, paymentRequired bool) Message {
	var text string
	switch status {
	case "approved":
		text = fmt.Sprintf("Your request \"%s\" has been approved.", title)
		if paymentRequired {
			text += " Please complete the payment from your dashboard to confirm the session."
		}
	case "rejected":
		text = fmt.Sprintf("Your request \"%s\" has been declined.", title)
		if reason != nil && *reason != "" {
			text += " Reason: " + *reason
		}
	case "paid":
		text = fmt.Sprintf("Payment for \"%s\" has been received. See you at the session!", title)
	case "expired":
		text = fmt.Sprintf("Your request \"%s\" has expired.", title)
	default:
		text = fmt.Sprintf("Your request \"%s\" is now %s.", title, status)
	}

	return Message{
		ToEmail: toEmail,
		ToName:  toName,
		Subject: "Booking update: " + title,
		Text:    fmt.Sprintf("Hi %s,\n\n%s\n", displayName(toName), text),
	}
}

func displayName(name string) string {
	if name == "" {
		return "there"
	}
	return name
}
