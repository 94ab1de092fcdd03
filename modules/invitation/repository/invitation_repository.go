package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"wedding-invitations/core/database"
	"wedding-invitations/core/logger"
	"wedding-invitations/modules/invitation/entity"
	"wedding-invitations/modules/invitation/model"
)

// ErrNotFound is returned when no invitation matches the given id or code.
var ErrNotFound = errors.New("invitation not found")

// ErrAlreadyResponded is returned by SaveResponse when another submission
// was recorded between the caller's status check and the write.
var ErrAlreadyResponded = errors.New("invitation already responded")

type InvitationRepository struct {
	db database.IDatabase
}

func NewInvitationRepository(db database.IDatabase) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// Create inserts the invitation and its invitees in a single transaction.
// Invitee membership is fixed at creation; no add/remove path exists.
func (r *InvitationRepository) Create(ctx context.Context, invitation *entity.Invitation) error {
	tx, err := r.db.BeginTxx(ctx)
	if err != nil {
		logger.Error("InvitationRepository:Create:BeginTx:Error", "error", err)
		return err
	}
	defer tx.Rollback()

	invitationQuery := `
		INSERT INTO invitations (id, code, status, type, addressed_to, email_address, email_sent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if _, err := tx.ExecContext(ctx, invitationQuery,
		invitation.ID,
		invitation.Code,
		invitation.Status,
		invitation.Type,
		invitation.AddressedTo,
		invitation.EmailAddress,
		invitation.EmailSent,
		invitation.CreatedAt,
		invitation.UpdatedAt,
	); err != nil {
		logger.Error("InvitationRepository:Create:Invitation:Error", "error", err)
		return err
	}

	inviteeQuery := `
		INSERT INTO invitees (id, invitation_id, position, name, status, requires_food)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, invitee := range invitation.Invitees {
		if _, err := tx.ExecContext(ctx, inviteeQuery,
			invitee.ID,
			invitee.InvitationID,
			invitee.Position,
			invitee.Name,
			invitee.Status,
			invitee.RequiresFood,
		); err != nil {
			logger.Error("InvitationRepository:Create:Invitee:Error", "error", err)
			return err
		}
	}

	return tx.Commit()
}

// GetByID gets an invitation and its invitees by id.
func (r *InvitationRepository) GetByID(ctx context.Context, id string) (*entity.Invitation, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetByCode gets an invitation and its invitees by its public code.
func (r *InvitationRepository) GetByCode(ctx context.Context, code string) (*entity.Invitation, error) {
	return r.getOne(ctx, "code = $1", code)
}

func (r *InvitationRepository) getOne(ctx context.Context, where string, arg any) (*entity.Invitation, error) {
	query := `
		SELECT id, code, status, type, addressed_to, email_address, email_sent,
		       contact_information, sent_at, responded_at, created_at, updated_at
		FROM invitations
		WHERE ` + where

	var invitation entity.Invitation
	if err := r.db.GetContext(ctx, &invitation, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error("InvitationRepository:getOne:Error", "error", err)
		return nil, err
	}

	invitees, err := r.inviteesFor(ctx, invitation.ID)
	if err != nil {
		return nil, err
	}
	invitation.Invitees = invitees

	return &invitation, nil
}

// List returns every invitation with its invitees, oldest first.
func (r *InvitationRepository) List(ctx context.Context) ([]entity.Invitation, error) {
	query := `
		SELECT id, code, status, type, addressed_to, email_address, email_sent,
		       contact_information, sent_at, responded_at, created_at, updated_at
		FROM invitations
		ORDER BY created_at ASC
	`
	var invitations []entity.Invitation
	if err := r.db.SelectContext(ctx, &invitations, query); err != nil {
		logger.Error("InvitationRepository:List:Error", "error", err)
		return nil, err
	}

	inviteeQuery := `
		SELECT id, invitation_id, position, name, status, requires_food, food_option, dietary_notes
		FROM invitees
		ORDER BY invitation_id, position ASC
	`
	var invitees []entity.Invitee
	if err := r.db.SelectContext(ctx, &invitees, inviteeQuery); err != nil {
		logger.Error("InvitationRepository:List:Invitees:Error", "error", err)
		return nil, err
	}

	byInvitation := make(map[string][]entity.Invitee, len(invitations))
	for _, invitee := range invitees {
		byInvitation[invitee.InvitationID] = append(byInvitation[invitee.InvitationID], invitee)
	}
	for i := range invitations {
		invitations[i].Invitees = byInvitation[invitations[i].ID]
	}

	return invitations, nil
}

func (r *InvitationRepository) inviteesFor(ctx context.Context, invitationID string) ([]entity.Invitee, error) {
	query := `
		SELECT id, invitation_id, position, name, status, requires_food, food_option, dietary_notes
		FROM invitees
		WHERE invitation_id = $1
		ORDER BY position ASC
	`
	var invitees []entity.Invitee
	if err := r.db.SelectContext(ctx, &invitees, query, invitationID); err != nil {
		logger.Error("InvitationRepository:inviteesFor:Error", "error", err)
		return nil, err
	}
	return invitees, nil
}

// MarkEmailSent records email delivery. The status only advances from draft
// so a response that arrived before the email went out is not regressed.
func (r *InvitationRepository) MarkEmailSent(ctx context.Context, id string, sentAt time.Time) error {
	query := `
		UPDATE invitations
		SET email_sent = TRUE,
		    sent_at = $2,
		    status = CASE WHEN status = $3 THEN $4 ELSE status END,
		    updated_at = $5
		WHERE id = $1
	`
	err := r.db.ExecContext(ctx, query, id, sentAt,
		string(model.InvitationStatusDraft),
		string(model.InvitationStatusEmailSent),
		time.Now().UTC(),
	)
	if err != nil {
		logger.Error("InvitationRepository:MarkEmailSent:Error", "error", err)
	}
	return err
}

// SaveResponse persists an RSVP: the invitation-level fields and every
// invitee's status in one transaction. The update only lands while no
// response has been recorded, so of two racing submissions exactly one
// wins; the loser gets ErrAlreadyResponded.
func (r *InvitationRepository) SaveResponse(ctx context.Context, invitation *entity.Invitation) error {
	tx, err := r.db.BeginTxx(ctx)
	if err != nil {
		logger.Error("InvitationRepository:SaveResponse:BeginTx:Error", "error", err)
		return err
	}
	defer tx.Rollback()

	invitationQuery := `
		UPDATE invitations
		SET status = $2, responded_at = $3, contact_information = $4, updated_at = $5
		WHERE id = $1 AND status <> $6
	`
	result, err := tx.ExecContext(ctx, invitationQuery,
		invitation.ID,
		invitation.Status,
		invitation.RespondedAt,
		invitation.ContactInformation,
		invitation.UpdatedAt,
		string(model.InvitationStatusResponseReceived),
	)
	if err != nil {
		logger.Error("InvitationRepository:SaveResponse:Invitation:Error", "error", err)
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		logger.Error("InvitationRepository:SaveResponse:RowsAffected:Error", "error", err)
		return err
	}
	if rows == 0 {
		return ErrAlreadyResponded
	}

	inviteeQuery := `
		UPDATE invitees
		SET status = $2, food_option = $3, dietary_notes = $4
		WHERE id = $1
	`
	for _, invitee := range invitation.Invitees {
		if _, err := tx.ExecContext(ctx, inviteeQuery,
			invitee.ID,
			invitee.Status,
			invitee.FoodOption,
			invitee.DietaryNotes,
		); err != nil {
			logger.Error("InvitationRepository:SaveResponse:Invitee:Error", "error", err)
			return err
		}
	}

	return tx.Commit()
}
