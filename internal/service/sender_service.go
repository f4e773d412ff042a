package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"venuebook/internal/entities"
	"venuebook/internal/schedule"
)

// FanoutNotifier implements schedule.Notifier: after a reservation commits it
// emails and texts the contacts named in the reservation metadata
// (notify_email, notify_name, notify_phone). Sends run on goroutines and
// failures are logged, never propagated back into admission.
type FanoutNotifier struct {
}

func NewFanoutNotifier() *FanoutNotifier {
	return &FanoutNotifier{}
}

func (n *FanoutNotifier) ReservationCreated(res schedule.Reservation) {
	n.send(res, "confirmed")
}

func (n *FanoutNotifier) ReservationCancelled(res schedule.Reservation) {
	n.send(res, "cancelled")
}

func (n *FanoutNotifier) send(res schedule.Reservation, status string) {
	emailData := entities.ReservationEmailData{
		RecipientName:      res.Metadata["notify_name"],
		Title:              res.Title(),
		Venue:              res.Interval.Venue,
		ReservationID:      res.ID,
		StartTimeFormatted: res.Interval.Start.UTC().Format("02 Jan 2006 15:04 MST"),
		EndTimeFormatted:   res.Interval.End.UTC().Format("02 Jan 2006 15:04 MST"),
		CurrentYear:        time.Now().UTC().Year(),
		Status:             status,
	}
	if emailData.RecipientName == "" {
		emailData.RecipientName = res.OwnerID
	}
	if emailData.Title == "" {
		emailData.Title = "Venue booking"
	}

	if toEmail := res.Metadata["notify_email"]; toEmail != "" {
		subject := fmt.Sprintf("%q at %s is %s", emailData.Title, emailData.Venue, status)
		plainTextBody := fmt.Sprintf(
			"Hello %s,\n\nThe booking %q at %s is %s.\n\n"+
				"Booking Details:\n"+
				"Reference: %s\n"+
				"Venue: %s\n"+
				"Starts: %s\n"+
				"Ends: %s\n",
			emailData.RecipientName, emailData.Title, emailData.Venue, status,
			emailData.ReservationID, emailData.Venue,
			emailData.StartTimeFormatted, emailData.EndTimeFormatted,
		)

		var htmlBody string
		tmplPath := filepath.Join("internal", "templates", "reservation_email.html")
		tmpl, err := template.ParseFiles(tmplPath)
		if err != nil {
			log.Printf("ALERT: could not parse HTML email template (%s): %v", tmplPath, err)
		} else {
			var htmlBodyBuffer bytes.Buffer
			if err := tmpl.Execute(&htmlBodyBuffer, emailData); err != nil {
				log.Printf("ALERT: could not render HTML email for reservation %s: %v", res.ID, err)
			}
			htmlBody = htmlBodyBuffer.String()
		}

		go func(toEmail, toName, subject, plainBody, htmlBodyContent string) {
			if errEmail := SendEmailWithSendGrid(toEmail, toName, subject, plainBody, htmlBodyContent); errEmail != nil {
				log.Printf("ALERT (async): email for reservation %s failed: %v", res.ID, errEmail)
			}
		}(toEmail, emailData.RecipientName, subject, plainTextBody, htmlBody)
	}

	if toPhone := res.Metadata["notify_phone"]; toPhone != "" {
		smsMessage := fmt.Sprintf("VenueBook: %q at %s is %s.\nStarts: %s.\nMore details in your email.",
			emailData.Title, emailData.Venue, status,
			res.Interval.Start.UTC().Format("02/01 15:04"),
		)
		go func(toPhone, body string) {
			if errSMS := SendSMS(toPhone, body); errSMS != nil {
				log.Printf("ALERT (async): SMS for reservation %s to %s failed: %v", res.ID, toPhone, errSMS)
			}
		}(toPhone, smsMessage)
	}
}
