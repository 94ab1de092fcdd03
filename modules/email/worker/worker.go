package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"wedding-invitations/core/config"
	"wedding-invitations/core/constants"
	"wedding-invitations/core/errors"
	"wedding-invitations/core/logger"
	emailService "wedding-invitations/modules/email/service"
	"wedding-invitations/modules/email/task"
	invitationService "wedding-invitations/modules/invitation/service"
)

// Handler processes queued invitation emails: deliver, then record the
// delivery so emailSent and sentAt become observable through the API.
type Handler struct {
	invitations *invitationService.InvitationService
	mailer      emailService.Mailer
}

func NewHandler(invitations *invitationService.InvitationService, mailer emailService.Mailer) *Handler {
	return &Handler{
		invitations: invitations,
		mailer:      mailer,
	}
}

func (h *Handler) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeSendInvitationEmail, h.HandleSendInvitationEmail)
	return mux
}

func (h *Handler) HandleSendInvitationEmail(ctx context.Context, t *asynq.Task) error {
	var payload task.SendInvitationEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	invitation, appErr := h.invitations.GetByID(ctx, payload.InvitationID)
	if appErr != nil {
		if appErr.Code == errors.ErrNotFound {
			logger.Warn("EmailWorker:SendInvitationEmail:Gone", "invitation_id", payload.InvitationID)
			return nil
		}
		return appErr
	}

	if invitation.EmailAddress == nil {
		logger.Warn("EmailWorker:SendInvitationEmail:NoAddress", "invitation_id", invitation.ID)
		return nil
	}

	if err := h.mailer.SendInvitationEmail(ctx, *invitation.EmailAddress, invitation); err != nil {
		logger.Error("EmailWorker:SendInvitationEmail:Error", "error", err, "invitation_id", invitation.ID)
		return err
	}

	if appErr := h.invitations.MarkEmailSent(ctx, invitation.ID); appErr != nil {
		return appErr
	}

	logger.Info("EmailWorker:SendInvitationEmail:Sent", "invitation_id", invitation.ID)
	return nil
}

// NewServer builds the asynq server bound to the emails queue.
func NewServer(cfg config.RedisConfig) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				constants.QueueEmails: 1,
			},
		},
	)
}
