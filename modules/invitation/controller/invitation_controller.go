package controller

import (
	"github.com/labstack/echo/v4"

	"wedding-invitations/core/controller"
	"wedding-invitations/core/errors"
	"wedding-invitations/core/logger"
	"wedding-invitations/modules/invitation/model"
	"wedding-invitations/modules/invitation/service"
)

type InvitationController struct {
	controller.BaseController
	service *service.InvitationService
}

func NewInvitationController(service *service.InvitationService) *InvitationController {
	return &InvitationController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// Create accepts an InvitationDefinition and answers 202 with a Reference
// to the new invitation.
func (c *InvitationController) Create(ctx echo.Context) error {
	var definition model.InvitationDefinition
	if err := ctx.Bind(&definition); err != nil {
		logger.Error("InvitationController:Create:Bind:Error", "error", err)
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid invitation definition", nil)
	}

	reference, appErr := c.service.Create(ctx.Request().Context(), &definition)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.Accepted(ctx, reference)
}

// List returns the full collection, in storage order.
func (c *InvitationController) List(ctx echo.Context) error {
	invitations, appErr := c.service.List(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.OK(ctx, invitations)
}

// GetByID returns a single invitation.
func (c *InvitationController) GetByID(ctx echo.Context) error {
	invitation, appErr := c.service.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.OK(ctx, invitation)
}

// SendEmail queues the notification email and answers 202 with an empty
// object once the request is accepted.
func (c *InvitationController) SendEmail(ctx echo.Context) error {
	if appErr := c.service.SendEmail(ctx.Request().Context(), ctx.Param("id")); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.Accepted(ctx, struct{}{})
}

// GetByCode resolves the public invitation-page code.
func (c *InvitationController) GetByCode(ctx echo.Context) error {
	invitation, appErr := c.service.GetByCode(ctx.Request().Context(), ctx.Param("code"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.OK(ctx, invitation)
}

// SubmitRSVP records the guest's response for every invitee on the
// invitation.
func (c *InvitationController) SubmitRSVP(ctx echo.Context) error {
	var submission model.RSVPSubmission
	if err := ctx.Bind(&submission); err != nil {
		logger.Error("InvitationController:SubmitRSVP:Bind:Error", "error", err)
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid RSVP submission", nil)
	}

	invitation, appErr := c.service.SubmitRSVP(ctx.Request().Context(), ctx.Param("code"), &submission)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.OK(ctx, invitation)
}
