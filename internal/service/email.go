package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"lenslend-backend/internal/domain"
)

type emailService struct {
	apiKey   string
	from     string
	fromName string
}

func NewEmailService(apiKey, from, fromName string) EmailService {
	return &emailService{
		apiKey:   apiKey,
		from:     from,
		fromName: fromName,
	}
}

func (s *emailService) SendBookingRequestNotification(ctx context.Context, ownerEmail, renterName, gearName string) error {
	subject := fmt.Sprintf("New rental request for %s", gearName)
	body := fmt.Sprintf("Hello,\n\n%s requested to rent your %s. Open your requests to accept or decline.\n\nThe LensLend Team", renterName, gearName)
	return s.send(ownerEmail, subject, body)
}

func (s *emailService) SendBookingStatusNotification(ctx context.Context, email, gearName string, status domain.BookingStatus, note string) error {
	subject := fmt.Sprintf("Booking update: %s is now %s", gearName, status)
	body := fmt.Sprintf("Hello,\n\nYour booking for %s moved to %s.", gearName, status)
	if note != "" {
		body += fmt.Sprintf("\n\nNote: %s", note)
	}
	body += "\n\nThe LensLend Team"
	return s.send(email, subject, body)
}

func (s *emailService) SendReturnReminder(ctx context.Context, email, gearName, endDate string) error {
	subject := fmt.Sprintf("Return reminder: %s", gearName)
	body := fmt.Sprintf("Hello,\n\nThe rental of %s ends on %s. Please arrange the return.\n\nThe LensLend Team", gearName, endDate)
	return s.send(email, subject, body)
}

func (s *emailService) send(to, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.from)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
