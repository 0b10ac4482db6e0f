package mailer

import (
	"context"
	"net/smtp"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/mwsociety/memberhub/internal/app/system/notify"
)

func TestBuild(t *testing.T) {
	t.Run("approved", func(t *testing.T) {
		email, ok := Build(notify.Event{
			Type: notify.EventTransactionApproved,
			Detail: map[string]string{
				"payer_name": "Ada Lovelace",
				"reference":  "TXN-1",
				"amount":     "500.00",
			},
		})
		if !ok {
			t.Fatal("expected a template for approved events")
		}
		if !strings.Contains(email.Subject, "TXN-1") {
			t.Errorf("subject %q missing reference", email.Subject)
		}
		if !strings.Contains(email.TextBody, "Ada Lovelace") || !strings.Contains(email.TextBody, "500.00") {
			t.Errorf("body missing details: %q", email.TextBody)
		}
	})

	t.Run("rejected", func(t *testing.T) {
		email, ok := Build(notify.Event{
			Type:   notify.EventTransactionRejected,
			Detail: map[string]string{"payer_name": "Ada", "reference": "TXN-2"},
		})
		if !ok {
			t.Fatal("expected a template for rejected events")
		}
		if !strings.Contains(email.TextBody, "not accepted") {
			t.Errorf("body: %q", email.TextBody)
		}
	})

	t.Run("card issued", func(t *testing.T) {
		email, ok := Build(notify.Event{
			Type:   notify.EventCardIssued,
			Detail: map[string]string{"member_name": "Ada", "membership_number": "MWSS-M0001"},
		})
		if !ok {
			t.Fatal("expected a template for card events")
		}
		if !strings.Contains(email.TextBody, "MWSS-M0001") {
			t.Errorf("body missing membership number: %q", email.TextBody)
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		if _, ok := Build(notify.Event{Type: "something.else"}); ok {
			t.Error("expected no template for unknown event types")
		}
	})
}

func TestMailer_Deliver(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	m := New(Config{
		Host: "smtp.test.org", Port: 587,
		From: "noreply@test.org", FromName: "MemberHub",
	}, zap.NewNop())
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := m.Deliver(context.Background(), notify.Event{
		Type:      notify.EventTransactionApproved,
		Recipient: "payer@test.org",
		Detail:    map[string]string{"payer_name": "Ada", "reference": "TXN-1"},
	})
	if err != nil {
		t.Fatalf("Deliver failed: %v", err)
	}

	if gotAddr != "smtp.test.org:587" {
		t.Errorf("addr: got %q", gotAddr)
	}
	if gotFrom != "noreply@test.org" {
		t.Errorf("from: got %q", gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "payer@test.org" {
		t.Errorf("to: got %v", gotTo)
	}
	msg := string(gotMsg)
	if !strings.Contains(msg, "To: payer@test.org") || !strings.Contains(msg, "Subject: ") {
		t.Errorf("message headers missing: %q", msg)
	}
}

func TestMailer_Deliver_SkipsWithoutRecipient(t *testing.T) {
	m := New(Config{Host: "smtp.test.org", Port: 587}, zap.NewNop())
	called := false
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		called = true
		return nil
	}

	if err := m.Deliver(context.Background(), notify.Event{Type: notify.EventTransactionApproved}); err != nil {
		t.Fatalf("Deliver failed: %v", err)
	}
	if called {
		t.Error("no mail should be sent without a recipient")
	}
}

func TestMailer_Deliver_RespectsCanceledContext(t *testing.T) {
	m := New(Config{Host: "smtp.test.org", Port: 587}, zap.NewNop())
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Error("send should not be called with a canceled context")
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Deliver(ctx, notify.Event{
		Type:      notify.EventTransactionApproved,
		Recipient: "payer@test.org",
		Detail:    map[string]string{},
	})
	if err == nil {
		t.Error("expected a context error")
	}
}
