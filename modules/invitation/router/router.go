package router

import (
	"github.com/labstack/echo/v4"

	"wedding-invitations/modules/invitation/controller"
)

type InvitationRouter struct {
	controller *controller.InvitationController
}

func NewInvitationRouter(controller *controller.InvitationController) *InvitationRouter {
	return &InvitationRouter{
		controller: controller,
	}
}

func (r *InvitationRouter) Register(g *echo.Group) {
	invitations := g.Group("/invitations")

	invitations.POST("", r.controller.Create)
	invitations.GET("", r.controller.List)
	invitations.GET("/:id", r.controller.GetByID)
	invitations.POST("/:id/actions/send-invitation-email", r.controller.SendEmail)

	// Public routes backing the /invitation/{code} page and its RSVP form.
	invitations.GET("/code/:code", r.controller.GetByCode)
	invitations.POST("/code/:code/actions/submit-rsvp", r.controller.SubmitRSVP)
}
