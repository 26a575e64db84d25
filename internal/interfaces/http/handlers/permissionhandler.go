package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"keygate/internal/application/access/dto"
	"keygate/internal/application/access/usecases"
	"keygate/internal/shared/logger"
	"keygate/internal/shared/utils"
)

// PermissionUseCases groups the use cases the permission handler delegates
// to.
type PermissionUseCases struct {
	Grant             *usecases.GrantAccessUseCase
	Update            *usecases.UpdatePermissionUseCase
	Revoke            *usecases.RevokePermissionUseCase
	RevokeUserMachine *usecases.RevokeUserMachineAccessUseCase
	Delete            *usecases.DeletePermissionUseCase
	Get               *usecases.GetPermissionUseCase
	List              *usecases.ListPermissionsUseCase
	ListByUser        *usecases.ListUserPermissionsUseCase
	ListByMachine     *usecases.ListMachinePermissionsUseCase
	GetUserMachine    *usecases.GetUserMachinePermissionUseCase
	SummarizeUser     *usecases.SummarizeUserAccessUseCase
	SummarizeMachine  *usecases.SummarizeMachineAccessUseCase
	ListMirrored      *usecases.ListMirroredPermissionsUseCase
	DownloadMirrored  *usecases.DownloadMirroredPermissionUseCase
}

// PermissionHandler handles HTTP requests for access grants.
type PermissionHandler struct {
	ucs    PermissionUseCases
	logger logger.Interface
}

func NewPermissionHandler(ucs PermissionUseCases, log logger.Interface) *PermissionHandler {
	return &PermissionHandler{ucs: ucs, logger: log}
}

// GrantAccess handles POST /permissions/grant
func (h *PermissionHandler) GrantAccess(c *gin.Context) {
	var req dto.GrantAccessRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.ucs.Grant.Execute(c.Request.Context(), usecases.GrantAccessCommand{
		UserID:          req.UserID,
		MachineID:       req.MachineID,
		DigitalKeyID:    req.DigitalKeyID,
		PermissionLevel: req.PermissionLevel,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Access granted successfully")
}

// ListPermissions handles GET /permissions
func (h *PermissionHandler) ListPermissions(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.ucs.List.Execute(c.Request.Context(), p.Page, p.PageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Permissions, result.Total, result.Page, result.PageSize)
}

// GetPermission handles GET /permissions/:id
func (h *PermissionHandler) GetPermission(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "permission")
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.ucs.Get.Execute(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdatePermission handles PUT /permissions/:id
func (h *PermissionHandler) UpdatePermission(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "permission")
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.UpdatePermissionRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.ucs.Update.Execute(c.Request.Context(), usecases.UpdatePermissionCommand{
		ID:              id,
		PermissionLevel: req.PermissionLevel,
		IsActive:        req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Permission updated successfully", result)
}

// RevokePermission handles POST /permissions/:id/revoke
func (h *PermissionHandler) RevokePermission(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "permission")
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.ucs.Revoke.Execute(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Permission revoked successfully", result)
}

// DeletePermission handles DELETE /permissions/:id
func (h *PermissionHandler) DeletePermission(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "permission")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.ucs.Delete.Execute(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Permission deleted successfully", nil)
}

// ListUserPermissions handles GET /permissions/user/:user_id
func (h *PermissionHandler) ListUserPermissions(c *gin.Context) {
	userID, err := utils.ParseIDParam(c, "user_id", "user")
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.ucs.ListByUser.Execute(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListMachinePermissions handles GET /permissions/machine/:machine_id
func (h *PermissionHandler) ListMachinePermissions(c *gin.Context) {
	machineID, err := utils.ParseIDParam(c, "machine_id", "machine")
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.ucs.ListByMachine.Execute(c.Request.Context(), machineID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetUserMachinePermission handles GET /permissions/user/:user_id/machine/:machine_id
func (h *PermissionHandler) GetUserMachinePermission(c *gin.Context) {
	userID, machineID, ok := h.parsePair(c)
	if !ok {
		return
	}

	result, err := h.ucs.GetUserMachine.Execute(c.Request.Context(), userID, machineID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// RevokeUserMachineAccess handles POST /permissions/user/:user_id/machine/:machine_id/revoke
func (h *PermissionHandler) RevokeUserMachineAccess(c *gin.Context) {
	userID, machineID, ok := h.parsePair(c)
	if !ok {
		return
	}

	result, err := h.ucs.RevokeUserMachine.Execute(c.Request.Context(), userID, machineID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Access revoked successfully", result)
}

// GetUserAccess handles GET /permissions/access/user/:user_id
func (h *PermissionHandler) GetUserAccess(c *gin.Context) {
	userID, err := utils.ParseIDParam(c, "user_id", "user")
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.ucs.SummarizeUser.Execute(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetMachineAccess handles GET /permissions/access/machine/:machine_id
func (h *PermissionHandler) GetMachineAccess(c *gin.Context) {
	machineID, err := utils.ParseIDParam(c, "machine_id", "machine")
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.ucs.SummarizeMachine.Execute(c.Request.Context(), machineID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListMirroredPermissions handles GET /permissions/mirror/list
func (h *PermissionHandler) ListMirroredPermissions(c *gin.Context) {
	records := h.ucs.ListMirrored.Execute(c.Request.Context())
	utils.SuccessResponse(c, http.StatusOK, "", records)
}

// DownloadMirroredPermission handles GET /permissions/mirror/download/:id
func (h *PermissionHandler) DownloadMirroredPermission(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "permission")
	if err != nil {
		respondError(c, err)
		return
	}

	record, err := h.ucs.DownloadMirrored.Execute(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", record)
}

func (h *PermissionHandler) parsePair(c *gin.Context) (userID, machineID uint, ok bool) {
	userID, err := utils.ParseIDParam(c, "user_id", "user")
	if err != nil {
		respondError(c, err)
		return 0, 0, false
	}
	machineID, err = utils.ParseIDParam(c, "machine_id", "machine")
	if err != nil {
		respondError(c, err)
		return 0, 0, false
	}
	return userID, machineID, true
}
