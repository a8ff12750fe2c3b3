package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/brightfold/studio-backend/internal/mailer"
	"github.com/brightfold/studio-backend/internal/models"
	"github.com/brightfold/studio-backend/internal/repository"
	"github.com/brightfold/studio-backend/pkg/logger"
	"github.com/mileusna/useragent"
	"go.uber.org/zap"
)

var ErrContactValidation = errors.New("name, email, company, role, useCase and details are required")

// ContactRequest carries a contact-form submission plus the request
// metadata the handler captures.
type ContactRequest struct {
	Name    string
	Email   string
	Company string
	Role    string
	UseCase string
	Details string
	Budget  string

	IP        string
	UserAgent string
}

type ContactService struct {
	contactRepo *repository.ContactRepository
	sender      mailer.Sender
	recipients  []string
}

func NewContactService(contactRepo *repository.ContactRepository, sender mailer.Sender, recipients []string) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		sender:      sender,
		recipients:  recipients,
	}
}

// Submit emails the lead to the configured recipients and then
// persists the submission. The email goes first: if the provider is
// down, nothing is stored and the caller sees the failure.
func (s *ContactService) Submit(ctx context.Context, req ContactRequest) error {
	if err := validateContact(req); err != nil {
		return err
	}

	email := mailer.Email{
		To:      s.recipients,
		ReplyTo: req.Email,
		Subject: fmt.Sprintf("New lead: %s (%s)", req.Name, req.Company),
		HTML:    buildContactHTML(req),
		Text:    buildContactText(req),
	}

	if err := s.sender.Send(ctx, email); err != nil {
		logger.Log.Error("Contact email send failed",
			zap.String("email", req.Email),
			zap.Error(err),
		)
		return err
	}

	ua := useragent.Parse(req.UserAgent)

	submission := &models.ContactSubmission{
		Name:      req.Name,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Company:   req.Company,
		Role:      req.Role,
		UseCase:   req.UseCase,
		Details:   req.Details,
		Budget:    req.Budget,
		IP:        req.IP,
		UserAgent: req.UserAgent,
		Browser:   orUnknown(ua.Name),
		OS:        orUnknown(ua.OS),
		Device:    deviceType(ua),
	}

	if err := s.contactRepo.Create(submission); err != nil {
		logger.Log.Error("Contact submission persist failed",
			zap.String("email", submission.Email),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Contact submission stored",
		zap.String("submission_id", submission.ID.String()),
		zap.String("company", submission.Company),
	)
	return nil
}

func (s *ContactService) List(opts repository.ListOptions) ([]models.ContactSubmission, int64, error) {
	return s.contactRepo.List(opts)
}

func validateContact(req ContactRequest) error {
	for _, field := range []string{req.Name, req.Email, req.Company, req.Role, req.UseCase, req.Details} {
		if strings.TrimSpace(field) == "" {
			return ErrContactValidation
		}
	}
	if !emailRegex.MatchString(strings.TrimSpace(req.Email)) {
		return ErrContactValidation
	}
	return nil
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func deviceType(ua useragent.UserAgent) string {
	switch {
	case ua.Mobile:
		return "mobile"
	case ua.Tablet:
		return "tablet"
	case ua.Bot:
		return "bot"
	default:
		return "desktop"
	}
}

func buildContactHTML(req ContactRequest) string {
	var b strings.Builder
	b.WriteString("<h2>New contact submission</h2><table>")
	rows := []struct{ label, value string }{
		{"Name", req.Name},
		{"Email", req.Email},
		{"Company", req.Company},
		{"Role", req.Role},
		{"Use case", req.UseCase},
		{"Budget", req.Budget},
	}
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		fmt.Fprintf(&b, "<tr><td><strong>%s</strong></td><td>%s</td></tr>",
			html.EscapeString(row.label), html.EscapeString(row.value))
	}
	b.WriteString("</table>")
	fmt.Fprintf(&b, "<h3>Details</h3><p>%s</p>", html.EscapeString(req.Details))
	return b.String()
}

func buildContactText(req ContactRequest) string {
	var b strings.Builder
	b.WriteString("New contact submission\n\n")
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\nCompany: %s\nRole: %s\nUse case: %s\n",
		req.Name, req.Email, req.Company, req.Role, req.UseCase)
	if req.Budget != "" {
		fmt.Fprintf(&b, "Budget: %s\n", req.Budget)
	}
	fmt.Fprintf(&b, "\nDetails:\n%s\n", req.Details)
	return b.String()
}
