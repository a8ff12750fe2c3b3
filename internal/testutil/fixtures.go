package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/brightfold/studio-backend/internal/mailer"
	"github.com/brightfold/studio-backend/internal/models"
	"github.com/brightfold/studio-backend/internal/utils"
	"github.com/google/uuid"
)

// CreateTestUser builds a user with a hashed password.
func CreateTestUser(name, email, password string, role models.Role) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
	}, nil
}

// DefaultTestUser returns a regular user fixture.
func DefaultTestUser() (*models.User, error) {
	return CreateTestUser("Test User", "test@example.com", "Test123456", models.RoleUser)
}

// DefaultAdminUser returns an admin fixture.
func DefaultAdminUser() (*models.User, error) {
	return CreateTestUser("Admin", "admin@example.com", "Admin123456", models.RoleAdmin)
}

// FakeSender records sent emails and can be told to fail, standing in
// for the Resend client in contact-flow tests.
type FakeSender struct {
	mu   sync.Mutex
	Sent []mailer.Email
	Err  error
}

func (f *FakeSender) Send(ctx context.Context, email mailer.Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Sent = append(f.Sent, email)
	return nil
}

// SentCount returns how many emails were delivered.
func (f *FakeSender) SentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Sent)
}

// ErrSendFailed is a canned failure for FakeSender.Err.
var ErrSendFailed = errors.New("send failed")
