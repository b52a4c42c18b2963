package service

import (
	"context"
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"

	"stc-compliance-backend/internal/domain"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host, port, username, password, from string) EmailService {
	p, _ := strconv.Atoi(port)
	return &emailService{
		host:     host,
		port:     p,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) send(m *gomail.Message) error {
	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}

func (s *emailService) SendReviewOutcomeNotification(ctx context.Context, email, name, siteAddress string, status domain.InstallationStatus, notes string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)

	var subject, outcome string
	switch status {
	case domain.InstallationStatusUnderReview:
		subject = "Installation Under Review"
		outcome = "is now under review"
	case domain.InstallationStatusApproved:
		subject = "Installation Approved"
		outcome = "has been approved for STC processing"
	case domain.InstallationStatusRejected:
		subject = "Installation Rejected"
		outcome = "has been rejected"
	case domain.InstallationStatusCreditsClaimed:
		subject = "STC Credits Claimed"
		outcome = "has had its STC credits claimed with the Clean Energy Regulator"
	default:
		subject = "Installation Status Update"
		outcome = fmt.Sprintf("status changed to %s", status)
	}
	m.SetHeader("Subject", subject)

	body := fmt.Sprintf("Hello %s,\n\nYour installation at %s %s.", name, siteAddress, outcome)
	if notes != "" {
		body += fmt.Sprintf("\n\nReviewer notes: %s", notes)
	}
	body += "\n\nBest regards,\nThe STC Credits Team"
	m.SetBody("text/plain", body)

	return s.send(m)
}

func (s *emailService) SendReviewReminder(ctx context.Context, adminEmail string, pendingCount int, oldestSiteAddress string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", adminEmail)
	m.SetHeader("Subject", "Installations awaiting review")

	body := fmt.Sprintf("There are %d submitted installations awaiting review.", pendingCount)
	if oldestSiteAddress != "" {
		body += fmt.Sprintf(" The oldest is at %s.", oldestSiteAddress)
	}
	body += "\n\nBest regards,\nThe STC Credits Team"
	m.SetBody("text/plain", body)

	return s.send(m)
}
