// Package mailer renders the trip sharing emails and hands them to an SMTP relay.
package mailer

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/tripshare/tripshare/backend/internal/domain"
)

// Message is a fully rendered email ready for delivery.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers one message. SMTPSender is the production implementation.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Mailer builds the invitation and share-notice emails.
type Mailer struct {
	sender Sender
	appURL string
}

// New returns a Mailer that links back to appURL (no trailing slash).
func New(sender Sender, appURL string) *Mailer {
	return &Mailer{sender: sender, appURL: appURL}
}

// Invitation is sent to an email address with no account.
type Invitation struct {
	To              string
	SenderName      string
	TripID          uuid.UUID
	TripTitle       string
	TripDestination string
}

// TripShared is sent to a registered user a trip was shared with.
type TripShared struct {
	To              string
	RecipientName   string
	SenderName      string
	TripID          uuid.UUID
	TripTitle       string
	TripDestination string
}

// SendInvitation emails a signup link that carries the trip id and the
// recipient's email. Failures wrap domain.ErrEmailDelivery.
func (m *Mailer) SendInvitation(ctx context.Context, inv Invitation) error {
	link := m.appURL + "/signup?" + url.Values{
		"tripId": {inv.TripID.String()},
		"email":  {inv.To},
	}.Encode()

	err := m.send(ctx, inv.To, InvitationTemplate, map[string]string{
		"senderName":      inv.SenderName,
		"tripTitle":       inv.TripTitle,
		"tripDestination": inv.TripDestination,
		"recipientEmail":  inv.To,
		"link":            link,
	})
	if err != nil {
		return fmt.Errorf("mailer.Mailer.SendInvitation: %w", err)
	}
	return nil
}

// SendTripShared emails a dashboard link for the shared trip.
// Failures wrap domain.ErrEmailDelivery.
func (m *Mailer) SendTripShared(ctx context.Context, n TripShared) error {
	link := m.appURL + "/dashboard?" + url.Values{"tripId": {n.TripID.String()}}.Encode()

	err := m.send(ctx, n.To, TripSharedTemplate, map[string]string{
		"recipientName":   n.RecipientName,
		"senderName":      n.SenderName,
		"tripTitle":       n.TripTitle,
		"tripDestination": n.TripDestination,
		"link":            link,
	})
	if err != nil {
		return fmt.Errorf("mailer.Mailer.SendTripShared: %w", err)
	}
	return nil
}

func (m *Mailer) send(ctx context.Context, to string, tmpl Template, data map[string]string) error {
	rendered, err := Render(tmpl, data)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEmailDelivery, err)
	}
	msg := Message{To: to, Subject: rendered.Subject, HTML: rendered.HTML}
	if err := m.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEmailDelivery, err)
	}
	return nil
}
