// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"

	"github.com/mwsociety/memberhub/internal/app/system/notify"
)

// Build renders the email body for a notification event. The second return
// value is false for event types that have no mail template.
func Build(ev notify.Event) (Email, bool) {
	switch ev.Type {
	case notify.EventTransactionApproved:
		return buildApproved(ev), true
	case notify.EventTransactionRejected:
		return buildRejected(ev), true
	case notify.EventCardIssued:
		return buildCardIssued(ev), true
	}
	return Email{}, false
}

func buildApproved(ev notify.Event) Email {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Dear %s,\n\n", ev.Detail["payer_name"])
	fmt.Fprintf(&buf, "Your payment (reference %s) has been approved.\n\n", ev.Detail["reference"])
	if amount := ev.Detail["amount"]; amount != "" {
		fmt.Fprintf(&buf, "Amount: %s\n", amount)
	}
	buf.WriteString("\nThank you for supporting the society.\n")
	return Email{
		Subject:  fmt.Sprintf("Payment %s approved", ev.Detail["reference"]),
		TextBody: buf.String(),
	}
}

func buildRejected(ev notify.Event) Email {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Dear %s,\n\n", ev.Detail["payer_name"])
	fmt.Fprintf(&buf, "Your payment (reference %s) could not be verified and was not accepted.\n\n", ev.Detail["reference"])
	buf.WriteString("Please contact the office if you believe this is a mistake.\n")
	return Email{
		Subject:  fmt.Sprintf("Payment %s rejected", ev.Detail["reference"]),
		TextBody: buf.String(),
	}
}

func buildCardIssued(ev notify.Event) Email {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Dear %s,\n\n", ev.Detail["member_name"])
	buf.WriteString("Welcome! Your membership is now active.\n\n")
	fmt.Fprintf(&buf, "Membership number: %s\n", ev.Detail["membership_number"])
	buf.WriteString("Your identity card is ready for collection at the office.\n")
	return Email{
		Subject:  "Your membership card is ready",
		TextBody: buf.String(),
	}
}
