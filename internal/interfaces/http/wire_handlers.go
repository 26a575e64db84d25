package http

import (
	"context"

	"keygate/internal/interfaces/http/handlers"
	"keygate/internal/shared/logger"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler     *handlers.HealthHandler
	userHandler       *handlers.UserHandler
	machineHandler    *handlers.MachineHandler
	digitalKeyHandler *handlers.DigitalKeyHandler
	permissionHandler *handlers.PermissionHandler
}

func newHandlers(ucs *allUseCases, ping func(ctx context.Context) error, log logger.Interface) *allHandlers {
	p := ucs.permissions
	return &allHandlers{
		healthHandler: handlers.NewHealthHandler(ping, log),
		userHandler: handlers.NewUserHandler(
			ucs.createUserUC, ucs.getUserUC, ucs.listUsersUC, ucs.updateUserUC, ucs.deleteUserUC, log),
		machineHandler: handlers.NewMachineHandler(
			ucs.createMachineUC, ucs.getMachineUC, ucs.listMachinesUC, ucs.updateMachineUC, ucs.deleteMachineUC, log),
		digitalKeyHandler: handlers.NewDigitalKeyHandler(handlers.DigitalKeyUseCases{
			Create:       ucs.createKeyUC,
			Get:          ucs.getKeyUC,
			List:         ucs.listKeysUC,
			Update:       ucs.updateKeyUC,
			Delete:       ucs.deleteKeyUC,
			ListMirrored: ucs.listMirroredKeyUC,
			Download:     ucs.downloadKeyUC,
		}, log),
		permissionHandler: handlers.NewPermissionHandler(handlers.PermissionUseCases{
			Grant:             p.grant,
			Update:            p.update,
			Revoke:            p.revoke,
			RevokeUserMachine: p.revokeUserMachine,
			Delete:            p.delete,
			Get:               p.get,
			List:              p.list,
			ListByUser:        p.listByUser,
			ListByMachine:     p.listByMachine,
			GetUserMachine:    p.getUserMachine,
			SummarizeUser:     p.summarizeUser,
			SummarizeMachine:  p.summarizeMachine,
			ListMirrored:      p.listMirrored,
			DownloadMirrored:  p.downloadMirrored,
		}, log),
	}
}
