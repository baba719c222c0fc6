package contact

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gruppopolinex/polinex-backend/pkg/db/models"
	pkgerrors "github.com/gruppopolinex/polinex-backend/pkg/errors"
	"github.com/gruppopolinex/polinex-backend/pkg/logger"
)

// Submission carries the contact form fields.
type Submission struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Message string
}

// Service stores contact submissions and notifies operators.
type Service interface {
	Submit(ctx context.Context, sub Submission) (uuid.UUID, error)
}

type service struct {
	conn *gorm.DB
	logg *logger.Logger
}

// NewService builds the contact service.
func NewService(conn *gorm.DB, logg *logger.Logger) (Service, error) {
	if conn == nil {
		return nil, fmt.Errorf("db connection required")
	}
	return &service{conn: conn, logg: logg}, nil
}

// Submit persists the submission and logs a notification for operators.
func (s *service) Submit(ctx context.Context, sub Submission) (uuid.UUID, error) {
	if strings.TrimSpace(sub.Name) == "" || strings.TrimSpace(sub.Email) == "" || strings.TrimSpace(sub.Message) == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "name, email and message are required")
	}

	row := &models.ContactMessage{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(sub.Name),
		Email:   strings.TrimSpace(sub.Email),
		Message: strings.TrimSpace(sub.Message),
	}
	if phone := strings.TrimSpace(sub.Phone); phone != "" {
		row.Phone = &phone
	}
	if company := strings.TrimSpace(sub.Company); company != "" {
		row.Company = &company
	}

	if err := s.conn.WithContext(ctx).Create(row).Error; err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store contact submission")
	}

	if s.logg != nil {
		notifyCtx := s.logg.WithFields(ctx, map[string]any{
			"contact_id": row.ID.String(),
			"email":      row.Email,
		})
		s.logg.Info(notifyCtx, "contact.submission received")
	}

	return row.ID, nil
}
