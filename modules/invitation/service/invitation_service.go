package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"wedding-invitations/core/errors"
	"wedding-invitations/core/logger"
	"wedding-invitations/core/utils"
	"wedding-invitations/modules/invitation/entity"
	"wedding-invitations/modules/invitation/model"
	"wedding-invitations/modules/invitation/repository"
)

type InvitationRepositoryInterface interface {
	Create(ctx context.Context, invitation *entity.Invitation) error
	GetByID(ctx context.Context, id string) (*entity.Invitation, error)
	GetByCode(ctx context.Context, code string) (*entity.Invitation, error)
	List(ctx context.Context) ([]entity.Invitation, error)
	MarkEmailSent(ctx context.Context, id string, sentAt time.Time) error
	SaveResponse(ctx context.Context, invitation *entity.Invitation) error
}

// EmailEnqueuer hands the invitation email off to the background queue.
// Acceptance is not delivery: emailSent flips only once the worker reports
// back through MarkEmailSent.
type EmailEnqueuer interface {
	EnqueueSendInvitationEmail(ctx context.Context, invitationID string) error
}

// CodeCache fronts the public by-code lookup used by the invitation page.
type CodeCache interface {
	Get(ctx context.Context, code string) (*model.Invitation, bool)
	Set(ctx context.Context, invitation *model.Invitation)
	Invalidate(ctx context.Context, code string)
}

type InvitationService struct {
	repo   InvitationRepositoryInterface
	emails EmailEnqueuer
	cache  CodeCache
}

func NewInvitationService(repo InvitationRepositoryInterface, emails EmailEnqueuer, cache CodeCache) *InvitationService {
	return &InvitationService{
		repo:   repo,
		emails: emails,
		cache:  cache,
	}
}

// Create validates the definition and stores a new invitation in its
// initial state: status draft, every invitee pending, no email sent.
func (s *InvitationService) Create(ctx context.Context, definition *model.InvitationDefinition) (*model.Reference, *errors.AppError) {
	if appErr := validateDefinition(definition); appErr != nil {
		return nil, appErr
	}

	if _, err := s.repo.GetByCode(ctx, definition.Code); err == nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "an invitation with this code already exists", nil)
	} else if err != repository.ErrNotFound {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to check code uniqueness", err)
	}

	id := utils.GenerateID()
	if id == "" {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate invitation id", nil)
	}

	now := time.Now().UTC()
	invitation := &entity.Invitation{
		Code:        definition.Code,
		Status:      string(model.InvitationStatusDraft),
		Type:        string(definition.Type),
		AddressedTo: definition.AddressedTo,
	}
	invitation.ID = id
	invitation.CreatedAt = now
	invitation.UpdatedAt = now
	invitation.EmailAddress = definition.EmailAddress

	for position, invitee := range definition.Invitees {
		invitation.Invitees = append(invitation.Invitees, entity.Invitee{
			ID:           uuid.NewString(),
			InvitationID: id,
			Position:     position,
			Name:         invitee.Name,
			Status:       string(model.InviteeStatusPending),
			RequiresFood: invitee.RequiresFood,
		})
	}

	if err := s.repo.Create(ctx, invitation); err != nil {
		logger.Error("InvitationService:Create:Error", "error", err, "code", definition.Code)
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create invitation", err)
	}

	logger.Info("InvitationService:Create:Created", "id", id, "code", definition.Code)
	return &model.Reference{ID: id}, nil
}

func validateDefinition(definition *model.InvitationDefinition) *errors.AppError {
	if definition.Code == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "code is required", nil)
	}
	if definition.AddressedTo == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "addressedTo is required", nil)
	}
	if definition.Type != model.InvitationTypeFullDay && definition.Type != model.InvitationTypeReceptionOnly {
		return errors.NewAppError(errors.ErrInvalidInput, "unknown invitation type", nil)
	}
	if len(definition.Invitees) == 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "at least one invitee is required", nil)
	}
	return nil
}

// GetByID returns a single invitation.
func (s *InvitationService) GetByID(ctx context.Context, id string) (*model.Invitation, *errors.AppError) {
	invitation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NewAppError(errors.ErrNotFound, "invitation not found", nil)
		}
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load invitation", err)
	}

	m := invitation.ToModel()
	return &m, nil
}

// List returns every invitation. An empty store yields an empty collection,
// not an error.
func (s *InvitationService) List(ctx context.Context) ([]model.Invitation, *errors.AppError) {
	invitations, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list invitations", err)
	}

	result := make([]model.Invitation, 0, len(invitations))
	for i := range invitations {
		result = append(result, invitations[i].ToModel())
	}
	return result, nil
}

// GetByCode resolves the public invitation-page code, with a short-lived
// cache in front of the store.
func (s *InvitationService) GetByCode(ctx context.Context, code string) (*model.Invitation, *errors.AppError) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, code); ok {
			return cached, nil
		}
	}

	invitation, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NewAppError(errors.ErrNotFound, "invitation not found", nil)
		}
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load invitation", err)
	}

	m := invitation.ToModel()
	if s.cache != nil {
		s.cache.Set(ctx, &m)
	}
	return &m, nil
}

// SendEmail queues the notification email for an invitation. Re-sending is
// permitted; the operation is acceptance of the request, not delivery.
func (s *InvitationService) SendEmail(ctx context.Context, id string) *errors.AppError {
	invitation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return errors.NewAppError(errors.ErrNotFound, "invitation not found", nil)
		}
		return errors.NewAppError(errors.ErrGetFailed, "failed to load invitation", err)
	}

	if invitation.EmailAddress == nil {
		return errors.NewAppError(errors.ErrInvalidInput, "invitation has no email address", nil)
	}

	if err := s.emails.EnqueueSendInvitationEmail(ctx, id); err != nil {
		logger.Error("InvitationService:SendEmail:Enqueue:Error", "error", err, "id", id)
		return errors.NewAppError(errors.ErrInternalServer, "failed to enqueue invitation email", err)
	}

	logger.Info("InvitationService:SendEmail:Enqueued", "id", id)
	return nil
}

// MarkEmailSent records delivery reported by the email worker: emailSent
// flips true, sentAt is set, and status advances from draft to emailSent.
func (s *InvitationService) MarkEmailSent(ctx context.Context, id string) *errors.AppError {
	invitation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return errors.NewAppError(errors.ErrNotFound, "invitation not found", nil)
		}
		return errors.NewAppError(errors.ErrGetFailed, "failed to load invitation", err)
	}

	if err := s.repo.MarkEmailSent(ctx, id, time.Now().UTC()); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to record email delivery", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, invitation.Code)
	}
	return nil
}

// SubmitRSVP applies a guest's response to the invitation addressed by
// code. Each invitee transitions from pending to a terminal status exactly
// once; a second submission for the same invitation is rejected. Food
// choices are only accepted for attending invitees who were marked as
// requiring food at invitation time.
func (s *InvitationService) SubmitRSVP(ctx context.Context, code string, submission *model.RSVPSubmission) (*model.Invitation, *errors.AppError) {
	invitation, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NewAppError(errors.ErrNotFound, "invitation not found", nil)
		}
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load invitation", err)
	}

	if invitation.Status == string(model.InvitationStatusResponseReceived) {
		return nil, errors.NewAppError(errors.ErrAlreadyResponded, "a response has already been received for this invitation", nil)
	}

	responses := make(map[string]model.InviteeResponse, len(submission.Invitees))
	for _, response := range submission.Invitees {
		responses[response.ID] = response
	}
	if len(responses) != len(invitation.Invitees) {
		return nil, errors.NewAppError(errors.ErrInvalidRequestData, "a response is required for every invitee", nil)
	}

	for i := range invitation.Invitees {
		invitee := &invitation.Invitees[i]
		response, ok := responses[invitee.ID]
		if !ok {
			return nil, errors.NewAppError(errors.ErrInvalidRequestData, "response references an unknown invitee", nil)
		}

		if appErr := validateFoodChoice(invitee, response); appErr != nil {
			return nil, appErr
		}

		if response.Attending {
			invitee.Status = string(model.InviteeStatusAttending)
		} else {
			invitee.Status = string(model.InviteeStatusNotAttending)
		}
		invitee.FoodOption = (*string)(response.FoodOption)
		invitee.DietaryNotes = response.DietaryNotes
	}

	now := time.Now().UTC()
	invitation.Status = string(model.InvitationStatusResponseReceived)
	invitation.RespondedAt = &now
	invitation.ContactInformation = submission.ContactInformation
	invitation.UpdatedAt = now

	if err := s.repo.SaveResponse(ctx, invitation); err != nil {
		if err == repository.ErrAlreadyResponded {
			return nil, errors.NewAppError(errors.ErrAlreadyResponded, "a response has already been received for this invitation", nil)
		}
		logger.Error("InvitationService:SubmitRSVP:Save:Error", "error", err, "code", code)
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to save response", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, code)
	}

	logger.Info("InvitationService:SubmitRSVP:Saved", "id", invitation.ID, "code", code)
	m := invitation.ToModel()
	return &m, nil
}

func validateFoodChoice(invitee *entity.Invitee, response model.InviteeResponse) *errors.AppError {
	if response.FoodOption == nil {
		if response.DietaryNotes != nil {
			return errors.NewAppError(errors.ErrInvalidInput, "dietary notes require a food option", nil)
		}
		return nil
	}

	if !response.Attending {
		return errors.NewAppError(errors.ErrInvalidInput, "food options can only be chosen by attending invitees", nil)
	}
	if !invitee.RequiresFood {
		return errors.NewAppError(errors.ErrInvalidInput, "this invitee does not require food", nil)
	}
	if *response.FoodOption != model.FoodOptionStandard && *response.FoodOption != model.FoodOptionVegetarian {
		return errors.NewAppError(errors.ErrInvalidInput, "unknown food option", nil)
	}
	return nil
}
