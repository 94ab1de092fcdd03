package invitation

import (
	"github.com/labstack/echo/v4"

	"wedding-invitations/core/database"
	"wedding-invitations/modules/invitation/controller"
	"wedding-invitations/modules/invitation/repository"
	"wedding-invitations/modules/invitation/router"
	"wedding-invitations/modules/invitation/service"
)

// Init wires the invitation module and returns the service for use by the
// email worker.
func Init(g *echo.Group, db database.IDatabase, emails service.EmailEnqueuer, cache service.CodeCache) *service.InvitationService {
	repo := repository.NewInvitationRepository(db)
	svc := service.NewInvitationService(repo, emails, cache)
	ctrl := controller.NewInvitationController(svc)
	r := router.NewInvitationRouter(ctrl)

	r.Register(g)

	return svc
}
