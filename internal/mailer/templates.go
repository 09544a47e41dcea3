package mailer

// Template is a named email with {{placeholder}} tokens in its subject and body.
type Template struct {
	Name    string
	Subject string
	HTML    string
}

// InvitationTemplate invites someone without an account to sign up and view a trip.
// Placeholders: senderName, tripTitle, tripDestination, recipientEmail, link.
var InvitationTemplate = Template{
	Name:    "invitation",
	Subject: "{{senderName}} invited you to view their trip to {{tripDestination}}",
	HTML: `<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #1f2933; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #2563eb;">You're invited!</h2>
    <p><strong>{{senderName}}</strong> shared the trip <strong>{{tripTitle}}</strong> to
      <strong>{{tripDestination}}</strong> with you.</p>
    <p>Create a free account with {{recipientEmail}} to see the itinerary, photos and notes.</p>
    <p style="margin: 32px 0;">
      <a href="{{link}}" style="background: #2563eb; color: #ffffff; padding: 12px 24px;
        border-radius: 6px; text-decoration: none;">Sign up and view trip</a>
    </p>
    <p style="font-size: 12px; color: #6b7280;">If the button does not work, paste this link
      into your browser: {{link}}</p>
  </body>
</html>`,
}

// TripSharedTemplate tells an existing user that a trip was shared with them.
// Placeholders: recipientName, senderName, tripTitle, tripDestination, link.
var TripSharedTemplate = Template{
	Name:    "trip_shared",
	Subject: "{{senderName}} shared a trip with you: {{tripTitle}}",
	HTML: `<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #1f2933; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #2563eb;">Hi {{recipientName}},</h2>
    <p><strong>{{senderName}}</strong> shared the trip <strong>{{tripTitle}}</strong> to
      <strong>{{tripDestination}}</strong> with you.</p>
    <p>It now appears under "Shared with me" on your dashboard.</p>
    <p style="margin: 32px 0;">
      <a href="{{link}}" style="background: #2563eb; color: #ffffff; padding: 12px 24px;
        border-radius: 6px; text-decoration: none;">Open trip</a>
    </p>
  </body>
</html>`,
}
