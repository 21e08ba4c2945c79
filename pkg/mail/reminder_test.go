package mail

import (
	"strings"
	"testing"
)

func TestReminderMessage(t *testing.T) {
	msg := ReminderMessage("an@example.com", "An", "Hydration check", "You still need 1310ml today.")

	if len(msg.To) != 1 || msg.To[0] != "an@example.com" {
		t.Fatalf("unexpected recipients: %v", msg.To)
	}
	if msg.Subject != "VitaLog: Hydration check" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	if !strings.HasPrefix(msg.Body, "Hi An,") {
		t.Fatalf("expected greeting with name, got %q", msg.Body)
	}
	if !strings.Contains(msg.Body, "You still need 1310ml today.") {
		t.Fatalf("expected body text, got %q", msg.Body)
	}
	if !strings.HasSuffix(msg.Body, "The VitaLog team") {
		t.Fatalf("expected signature, got %q", msg.Body)
	}
}

func TestReminderMessageNeutralGreeting(t *testing.T) {
	msg := ReminderMessage("an@example.com", "  ", "Meal time", "Lunch is due.")

	if !strings.HasPrefix(msg.Body, "Hi there,") {
		t.Fatalf("expected neutral greeting, got %q", msg.Body)
	}
}
