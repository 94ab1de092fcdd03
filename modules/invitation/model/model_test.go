package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-invitations/modules/invitation/model"
)

func TestInvitationWireNames(t *testing.T) {
	email := "jo@example.com"
	sentAt := time.Date(2022, 1, 10, 18, 30, 0, 0, time.UTC)

	invitation := model.Invitation{
		ID:           "abc1234",
		Code:         "JoAndJohn",
		Status:       model.InvitationStatusEmailSent,
		Type:         model.InvitationTypeFullDay,
		CreatedAt:    time.Date(2022, 1, 1, 9, 0, 0, 0, time.UTC),
		AddressedTo:  "Jo & John",
		EmailAddress: &email,
		EmailSent:    true,
		SentAt:       &sentAt,
		Invitees:     []model.Invitee{},
	}

	payload, err := json.Marshal(invitation)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(payload, &fields))

	assert.Equal(t, "abc1234", fields["id"])
	assert.Equal(t, "JoAndJohn", fields["code"])
	assert.Equal(t, "emailSent", fields["status"])
	assert.Equal(t, "fullDay", fields["type"])
	assert.Equal(t, "Jo & John", fields["addressedTo"])
	assert.Equal(t, "jo@example.com", fields["emailAddress"])
	assert.Equal(t, true, fields["emailSent"])
	assert.Equal(t, "2022-01-10T18:30:00Z", fields["sentAt"])
	assert.NotContains(t, fields, "contactInformation")
	assert.NotContains(t, fields, "respondedAt")
}

func TestAbsentOptionalFieldsAreOmitted(t *testing.T) {
	invitee := model.Invitee{
		ID:     "11111111-1111-1111-1111-111111111111",
		Status: model.InviteeStatusPending,
	}

	payload, err := json.Marshal(invitee)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(payload, &fields))

	assert.Equal(t, "pending", fields["status"])
	assert.NotContains(t, fields, "name")
	assert.NotContains(t, fields, "foodOption")
	assert.NotContains(t, fields, "dietaryNotes")
}

func TestTimestampsKeepTheirOffset(t *testing.T) {
	melbourne := time.FixedZone("AEDT", 11*60*60)
	createdAt := time.Date(2022, 3, 19, 16, 0, 0, 0, melbourne)

	payload, err := json.Marshal(model.Invitation{CreatedAt: createdAt, Invitees: []model.Invitee{}})
	require.NoError(t, err)

	var decoded model.Invitation
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.Contains(t, string(payload), "2022-03-19T16:00:00+11:00")
	assert.True(t, decoded.CreatedAt.Equal(createdAt), "instant must survive the round trip")
}

func TestUnknownStatusRoundTrips(t *testing.T) {
	body := []byte(`{"id":"x","code":"c","status":"someFutureStatus","type":"fullDay","invitees":[]}`)

	var invitation model.Invitation
	require.NoError(t, json.Unmarshal(body, &invitation))
	assert.Equal(t, model.InvitationStatus("someFutureStatus"), invitation.Status)

	payload, err := json.Marshal(invitation)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"status":"someFutureStatus"`)
}

func TestFoodOptionWireNames(t *testing.T) {
	vegetarian := model.FoodOptionVegetarian
	notes := "I'm Vegan."

	payload, err := json.Marshal(model.Invitee{
		ID:           "a",
		Status:       model.InviteeStatusAttending,
		FoodOption:   &vegetarian,
		DietaryNotes: &notes,
	})
	require.NoError(t, err)

	assert.Contains(t, string(payload), `"foodOption":"vegetarian"`)
	assert.Contains(t, string(payload), `"dietaryNotes":"I'm Vegan."`)
}
