// Package model holds the wire contract for the invitations API, shared by
// the HTTP client and the service. Field names follow the lower-camel-case
// JSON convention; enumerations travel as their lower-camel-case names;
// timestamps are RFC 3339 instants with explicit offsets. Optional fields
// are pointers so "absent" is never confused with a zero value.
package model

import "time"

type InvitationType string

const (
	InvitationTypeFullDay       InvitationType = "fullDay"
	InvitationTypeReceptionOnly InvitationType = "receptionOnly"
)

// InvitationStatus values are owned by the service; the client round-trips
// whatever it is given, so the type is deliberately not validated here.
type InvitationStatus string

const (
	InvitationStatusDraft            InvitationStatus = "draft"
	InvitationStatusEmailSent        InvitationStatus = "emailSent"
	InvitationStatusResponseReceived InvitationStatus = "responseReceived"
)

type InviteeStatus string

const (
	InviteeStatusPending      InviteeStatus = "pending"
	InviteeStatusAttending    InviteeStatus = "attending"
	InviteeStatusNotAttending InviteeStatus = "notAttending"
)

type FoodOption string

const (
	FoodOptionStandard   FoodOption = "standard"
	FoodOptionVegetarian FoodOption = "vegetarian"
)

// Invitation is the server-owned view of an invitation and its invitees.
type Invitation struct {
	ID                 string           `json:"id"`
	Code               string           `json:"code"`
	Status             InvitationStatus `json:"status"`
	Type               InvitationType   `json:"type"`
	CreatedAt          time.Time        `json:"createdAt"`
	AddressedTo        string           `json:"addressedTo"`
	EmailAddress       *string          `json:"emailAddress,omitempty"`
	EmailSent          bool             `json:"emailSent"`
	ContactInformation *string          `json:"contactInformation,omitempty"`
	SentAt             *time.Time       `json:"sentAt,omitempty"`
	RespondedAt        *time.Time       `json:"respondedAt,omitempty"`
	Invitees           []Invitee        `json:"invitees"`
}

type Invitee struct {
	ID           string        `json:"id"`
	Name         *string       `json:"name,omitempty"`
	Status       InviteeStatus `json:"status"`
	FoodOption   *FoodOption   `json:"foodOption,omitempty"`
	DietaryNotes *string       `json:"dietaryNotes,omitempty"`
}

// InvitationDefinition is the write-only input to invitation creation.
type InvitationDefinition struct {
	Code         string              `json:"code"`
	Type         InvitationType      `json:"type"`
	AddressedTo  string              `json:"addressedTo"`
	EmailAddress *string             `json:"emailAddress,omitempty"`
	Invitees     []InviteeDefinition `json:"invitees"`
}

type InviteeDefinition struct {
	Name         *string `json:"name,omitempty"`
	RequiresFood bool    `json:"requiresFood"`
}

// Reference is the creation acknowledgment: just the new resource's id.
type Reference struct {
	ID string `json:"id"`
}

// RSVPSubmission is the guest's response for every invitee on an
// invitation, submitted from the public RSVP page.
type RSVPSubmission struct {
	ContactInformation *string           `json:"contactInformation,omitempty"`
	Invitees           []InviteeResponse `json:"invitees"`
}

type InviteeResponse struct {
	ID           string      `json:"id"`
	Attending    bool        `json:"attending"`
	FoodOption   *FoodOption `json:"foodOption,omitempty"`
	DietaryNotes *string     `json:"dietaryNotes,omitempty"`
}
