package service

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/hibiken/asynq"

	"wedding-invitations/core/config"
	"wedding-invitations/core/logger"
	"wedding-invitations/modules/email/task"
	"wedding-invitations/modules/invitation/model"
)

// Enqueuer queues invitation emails for background delivery.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

func (e *Enqueuer) EnqueueSendInvitationEmail(ctx context.Context, invitationID string) error {
	t, err := task.NewSendInvitationEmailTask(invitationID)
	if err != nil {
		return fmt.Errorf("build send-invitation-email task: %w", err)
	}

	info, err := e.client.EnqueueContext(ctx, t)
	if err != nil {
		return fmt.Errorf("enqueue send-invitation-email task: %w", err)
	}

	logger.Info("EmailService:Enqueue:Queued", "task_id", info.ID, "invitation_id", invitationID)
	return nil
}

// Mailer delivers the invitation notification. Template rendering and
// delivery mechanics beyond a plain-text message are out of scope here.
type Mailer interface {
	SendInvitationEmail(ctx context.Context, to string, invitation *model.Invitation) error
}

type SMTPMailer struct {
	cfg config.EmailConfig
}

func NewSMTPMailer(cfg config.EmailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendInvitationEmail(_ context.Context, to string, invitation *model.Invitation) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: You're invited!\r\n\r\nDear %s,\r\n\r\nYour invitation is ready at /invitation/%s\r\n",
		m.cfg.From, to, invitation.AddressedTo, invitation.Code,
	)

	if err := smtp.SendMail(addr, nil, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send invitation email: %w", err)
	}
	return nil
}
