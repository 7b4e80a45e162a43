// Package contact accepts contact-form submissions and hands them to
// the mail worker via the messaging layer.
package contact

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	zlog "github.com/rs/zerolog/log"

	"github.com/openshelf/branch-events/internal/domain"
)

// Message is one contact-form submission.
type Message struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Subject string `json:"subject" validate:"required,max=200"`
	Body    string `json:"body" validate:"required,max=4000"`
}

type Publisher interface {
	PublishContact(ctx context.Context, msg Message) error
}

// NoopPublisher logs and drops messages; used when RabbitMQ is not
// configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishContact(_ context.Context, msg Message) error {
	zlog.Warn().Str("from", msg.Email).Msg("contact publisher not configured: message dropped")
	return nil
}

type Service struct {
	pub      Publisher
	validate *validator.Validate
}

func New(pub Publisher) *Service {
	return &Service{
		pub:      pub,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Submit validates and publishes one message. Validation failures map to
// the shared error taxonomy with a per-field meta.
func (s *Service) Submit(ctx context.Context, msg Message) error {
	if err := s.validate.Struct(msg); err != nil {
		meta := map[string]string{}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				meta[fieldName(fe)] = "failed " + fe.Tag() + " validation"
			}
		}
		return domain.ErrValidationMeta("invalid contact message", meta)
	}
	return s.pub.PublishContact(ctx, msg)
}

func fieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		return "name"
	case "Email":
		return "email"
	case "Subject":
		return "subject"
	case "Body":
		return "body"
	default:
		return fe.Field()
	}
}
