package entity

import (
	"time"

	coreEntity "wedding-invitations/core/entity"
	"wedding-invitations/modules/invitation/model"
)

type Invitation struct {
	Code               string     `db:"code"`
	Status             string     `db:"status"`
	Type               string     `db:"type"`
	AddressedTo        string     `db:"addressed_to"`
	EmailAddress       *string    `db:"email_address"`
	EmailSent          bool       `db:"email_sent"`
	ContactInformation *string    `db:"contact_information"`
	SentAt             *time.Time `db:"sent_at"`
	RespondedAt        *time.Time `db:"responded_at"`
	Invitees           []Invitee  `db:"-"`
	coreEntity.BaseEntity
}

type Invitee struct {
	ID           string  `db:"id"`
	InvitationID string  `db:"invitation_id"`
	Position     int     `db:"position"`
	Name         *string `db:"name"`
	Status       string  `db:"status"`
	RequiresFood bool    `db:"requires_food"`
	FoodOption   *string `db:"food_option"`
	DietaryNotes *string `db:"dietary_notes"`
}

// ToModel maps the stored rows onto the wire contract.
func (i *Invitation) ToModel() model.Invitation {
	invitees := make([]model.Invitee, 0, len(i.Invitees))
	for _, invitee := range i.Invitees {
		invitees = append(invitees, invitee.ToModel())
	}

	return model.Invitation{
		ID:                 i.ID,
		Code:               i.Code,
		Status:             model.InvitationStatus(i.Status),
		Type:               model.InvitationType(i.Type),
		CreatedAt:          i.CreatedAt,
		AddressedTo:        i.AddressedTo,
		EmailAddress:       i.EmailAddress,
		EmailSent:          i.EmailSent,
		ContactInformation: i.ContactInformation,
		SentAt:             i.SentAt,
		RespondedAt:        i.RespondedAt,
		Invitees:           invitees,
	}
}

func (i *Invitee) ToModel() model.Invitee {
	var foodOption *model.FoodOption
	if i.FoodOption != nil {
		option := model.FoodOption(*i.FoodOption)
		foodOption = &option
	}

	return model.Invitee{
		ID:           i.ID,
		Name:         i.Name,
		Status:       model.InviteeStatus(i.Status),
		FoodOption:   foodOption,
		DietaryNotes: i.DietaryNotes,
	}
}
