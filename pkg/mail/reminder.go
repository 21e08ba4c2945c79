package mail

import (
	"fmt"
	"strings"
)

// DefaultSender is the address reminder email is sent from when the SMTP
// configuration does not name one.
const DefaultSender = "VitaLog <no-reply@vitalog.app>"

const subjectPrefix = "VitaLog: "

// ReminderMessage composes the outbound email for one reminder. The recipient
// name falls back to a neutral greeting when the profile has none.
func ReminderMessage(to, name, title, body string) Message {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "there"
	}

	return Message{
		To:      []string{to},
		Subject: subjectPrefix + title,
		Body:    fmt.Sprintf("Hi %s,\r\n\r\n%s\r\n\r\nThe VitaLog team", name, body),
	}
}
