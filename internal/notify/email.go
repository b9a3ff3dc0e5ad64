package notify

import (
	"context"
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/models"
)

// UserLookup resolves a user id to an account so the mailer knows the
// recipient address.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (models.User, error)
}

// EmailNotifier mirrors approve/decline decisions to the requester's inbox.
// Other event types are ignored; realtime traffic stays on the websocket.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
	users  UserLookup
}

func NewEmailNotifier(host string, port int, username, password, from string, users UserLookup) *EmailNotifier {
	return &EmailNotifier{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		users:  users,
	}
}

func (n *EmailNotifier) Emit(ctx context.Context, userID string, ev Event) {
	var subject, body string
	switch ev.Type {
	case EventChatApproved:
		subject = "Your contact request was approved"
		body = "The item's owner approved your request. Open the app to start chatting."
	case EventChatDeclined:
		subject = "Your contact request was declined"
		body = "The item's owner declined your request."
	default:
		return
	}

	u, err := n.users.GetUserByID(ctx, userID)
	if err != nil {
		log.Printf("mail lookup %s: %v", userID, err)
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", n.from)
	msg.SetHeader("To", u.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", fmt.Sprintf("Hi %s,\n\n%s\n", u.DisplayName, body))

	if err := n.dialer.DialAndSend(msg); err != nil {
		log.Printf("mail send to %s: %v", u.Email, err)
	}
}
