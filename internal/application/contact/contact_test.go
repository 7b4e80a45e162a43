package contact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/branch-events/internal/domain"
)

type capturedPublisher struct {
	msgs []Message
}

func (p *capturedPublisher) PublishContact(_ context.Context, msg Message) error {
	p.msgs = append(p.msgs, msg)
	return nil
}

func validMessage() Message {
	return Message{
		Name:    "Pat Reader",
		Email:   "pat@example.org",
		Subject: "Broken calendar link",
		Body:    "The March view shows a dead link.",
	}
}

func TestSubmit_PublishesValidMessage(t *testing.T) {
	pub := &capturedPublisher{}
	svc := New(pub)

	require.NoError(t, svc.Submit(context.Background(), validMessage()))
	require.Len(t, pub.msgs, 1)
	assert.Equal(t, "pat@example.org", pub.msgs[0].Email)
}

func TestSubmit_RejectsInvalidMessage(t *testing.T) {
	pub := &capturedPublisher{}
	svc := New(pub)

	msg := validMessage()
	msg.Email = "not-an-email"
	msg.Subject = ""

	err := svc.Submit(context.Background(), msg)
	require.Error(t, err)
	var ae *domain.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, domain.CodeValidation, ae.Code)
	assert.Contains(t, ae.Meta, "email")
	assert.Contains(t, ae.Meta, "subject")
	assert.Empty(t, pub.msgs)
}

func TestNoopPublisher_DropsQuietly(t *testing.T) {
	svc := New(NoopPublisher{})
	assert.NoError(t, svc.Submit(context.Background(), validMessage()))
}
