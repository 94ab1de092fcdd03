package task

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"wedding-invitations/core/constants"
)

const TypeSendInvitationEmail = "invitation:send-email"

type SendInvitationEmailPayload struct {
	InvitationID string `json:"invitationId"`
}

func NewSendInvitationEmailTask(invitationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(SendInvitationEmailPayload{InvitationID: invitationID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSendInvitationEmail, payload,
		asynq.Queue(constants.QueueEmails),
		asynq.MaxRetry(5),
	), nil
}
