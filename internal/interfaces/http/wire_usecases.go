package http

import (
	accessUsecases "keygate/internal/application/access/usecases"
	keyUsecases "keygate/internal/application/digitalkey/usecases"
	machineUsecases "keygate/internal/application/machine/usecases"
	userUsecases "keygate/internal/application/user/usecases"
	"keygate/internal/domain/mirror"
	"keygate/internal/shared/logger"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// User
	createUserUC *userUsecases.CreateUserUseCase
	getUserUC    *userUsecases.GetUserUseCase
	listUsersUC  *userUsecases.ListUsersUseCase
	updateUserUC *userUsecases.UpdateUserUseCase
	deleteUserUC *userUsecases.DeleteUserUseCase

	// Machine
	createMachineUC *machineUsecases.CreateMachineUseCase
	getMachineUC    *machineUsecases.GetMachineUseCase
	listMachinesUC  *machineUsecases.ListMachinesUseCase
	updateMachineUC *machineUsecases.UpdateMachineUseCase
	deleteMachineUC *machineUsecases.DeleteMachineUseCase

	// Digital key
	createKeyUC       *keyUsecases.CreateDigitalKeyUseCase
	getKeyUC          *keyUsecases.GetDigitalKeyUseCase
	listKeysUC        *keyUsecases.ListDigitalKeysUseCase
	updateKeyUC       *keyUsecases.UpdateDigitalKeyUseCase
	deleteKeyUC       *keyUsecases.DeleteDigitalKeyUseCase
	listMirroredKeyUC *keyUsecases.ListMirroredKeysUseCase
	downloadKeyUC     *keyUsecases.DownloadMirroredKeyUseCase

	// Access
	permissions permissionUseCases
}

type permissionUseCases struct {
	grant             *accessUsecases.GrantAccessUseCase
	update            *accessUsecases.UpdatePermissionUseCase
	revoke            *accessUsecases.RevokePermissionUseCase
	revokeUserMachine *accessUsecases.RevokeUserMachineAccessUseCase
	delete            *accessUsecases.DeletePermissionUseCase
	get               *accessUsecases.GetPermissionUseCase
	list              *accessUsecases.ListPermissionsUseCase
	listByUser        *accessUsecases.ListUserPermissionsUseCase
	listByMachine     *accessUsecases.ListMachinePermissionsUseCase
	getUserMachine    *accessUsecases.GetUserMachinePermissionUseCase
	summarizeUser     *accessUsecases.SummarizeUserAccessUseCase
	summarizeMachine  *accessUsecases.SummarizeMachineAccessUseCase
	listMirrored      *accessUsecases.ListMirroredPermissionsUseCase
	downloadMirrored  *accessUsecases.DownloadMirroredPermissionUseCase
}

func newUseCases(r *repositories, store mirror.Store, locker accessUsecases.Locker, idempotentRevoke bool, log logger.Interface) *allUseCases {
	return &allUseCases{
		createUserUC: userUsecases.NewCreateUserUseCase(r.userRepo, log),
		getUserUC:    userUsecases.NewGetUserUseCase(r.userRepo, log),
		listUsersUC:  userUsecases.NewListUsersUseCase(r.userRepo, log),
		updateUserUC: userUsecases.NewUpdateUserUseCase(r.userRepo, log),
		deleteUserUC: userUsecases.NewDeleteUserUseCase(r.userRepo, log),

		createMachineUC: machineUsecases.NewCreateMachineUseCase(r.machineRepo, log),
		getMachineUC:    machineUsecases.NewGetMachineUseCase(r.machineRepo, log),
		listMachinesUC:  machineUsecases.NewListMachinesUseCase(r.machineRepo, log),
		updateMachineUC: machineUsecases.NewUpdateMachineUseCase(r.machineRepo, log),
		deleteMachineUC: machineUsecases.NewDeleteMachineUseCase(r.machineRepo, log),

		createKeyUC:       keyUsecases.NewCreateDigitalKeyUseCase(r.digitalKeyRepo, r.machineRepo, store, log),
		getKeyUC:          keyUsecases.NewGetDigitalKeyUseCase(r.digitalKeyRepo, log),
		listKeysUC:        keyUsecases.NewListDigitalKeysUseCase(r.digitalKeyRepo, log),
		updateKeyUC:       keyUsecases.NewUpdateDigitalKeyUseCase(r.digitalKeyRepo, r.machineRepo, store, log),
		deleteKeyUC:       keyUsecases.NewDeleteDigitalKeyUseCase(r.digitalKeyRepo, store, log),
		listMirroredKeyUC: keyUsecases.NewListMirroredKeysUseCase(store, log),
		downloadKeyUC:     keyUsecases.NewDownloadMirroredKeyUseCase(store, log),

		permissions: permissionUseCases{
			grant:             accessUsecases.NewGrantAccessUseCase(r.permissionRepo, r.userRepo, r.machineRepo, r.digitalKeyRepo, locker, store, log),
			update:            accessUsecases.NewUpdatePermissionUseCase(r.permissionRepo, store, log),
			revoke:            accessUsecases.NewRevokePermissionUseCase(r.permissionRepo, store, idempotentRevoke, log),
			revokeUserMachine: accessUsecases.NewRevokeUserMachineAccessUseCase(r.permissionRepo, log),
			delete:            accessUsecases.NewDeletePermissionUseCase(r.permissionRepo, store, log),
			get:               accessUsecases.NewGetPermissionUseCase(r.permissionRepo, log),
			list:              accessUsecases.NewListPermissionsUseCase(r.permissionRepo, log),
			listByUser:        accessUsecases.NewListUserPermissionsUseCase(r.permissionRepo, r.userRepo, log),
			listByMachine:     accessUsecases.NewListMachinePermissionsUseCase(r.permissionRepo, r.machineRepo, log),
			getUserMachine:    accessUsecases.NewGetUserMachinePermissionUseCase(r.permissionRepo, log),
			summarizeUser:     accessUsecases.NewSummarizeUserAccessUseCase(r.permissionRepo, r.userRepo, r.machineRepo, log),
			summarizeMachine:  accessUsecases.NewSummarizeMachineAccessUseCase(r.permissionRepo, r.userRepo, r.machineRepo, log),
			listMirrored:      accessUsecases.NewListMirroredPermissionsUseCase(store, log),
			downloadMirrored:  accessUsecases.NewDownloadMirroredPermissionUseCase(store, log),
		},
	}
}
