package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"keygate/internal/application/machine/dto"
	"keygate/internal/application/machine/usecases"
	"keygate/internal/shared/logger"
	"keygate/internal/shared/utils"
)

// MachineHandler handles HTTP requests for machine operations
type MachineHandler struct {
	createUC *usecases.CreateMachineUseCase
	getUC    *usecases.GetMachineUseCase
	listUC   *usecases.ListMachinesUseCase
	updateUC *usecases.UpdateMachineUseCase
	deleteUC *usecases.DeleteMachineUseCase
	logger   logger.Interface
}

func NewMachineHandler(
	createUC *usecases.CreateMachineUseCase,
	getUC *usecases.GetMachineUseCase,
	listUC *usecases.ListMachinesUseCase,
	updateUC *usecases.UpdateMachineUseCase,
	deleteUC *usecases.DeleteMachineUseCase,
	log logger.Interface,
) *MachineHandler {
	return &MachineHandler{
		createUC: createUC,
		getUC:    getUC,
		listUC:   listUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		logger:   log,
	}
}

// CreateMachine handles POST /machines
func (h *MachineHandler) CreateMachine(c *gin.Context) {
	var req dto.CreateMachineRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateMachineCommand{
		MachineName: req.MachineName,
		MachineType: req.MachineType,
		IPAddress:   req.IPAddress,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Machine created successfully")
}

// ListMachines handles GET /machines
func (h *MachineHandler) ListMachines(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), p.Page, p.PageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Machines, result.Total, result.Page, result.PageSize)
}

// GetMachine handles GET /machines/:id
func (h *MachineHandler) GetMachine(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "machine")
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.getUC.ExecuteByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetMachineByName handles GET /machines/name/:machine_name
func (h *MachineHandler) GetMachineByName(c *gin.Context) {
	result, err := h.getUC.ExecuteByName(c.Request.Context(), c.Param("machine_name"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListMachinesByType handles GET /machines/type/:machine_type
func (h *MachineHandler) ListMachinesByType(c *gin.Context) {
	result, err := h.listUC.ExecuteByType(c.Request.Context(), c.Param("machine_type"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListActiveMachines handles GET /machines/active
func (h *MachineHandler) ListActiveMachines(c *gin.Context) {
	result, err := h.listUC.ExecuteActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateMachine handles PUT /machines/:id
func (h *MachineHandler) UpdateMachine(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "machine")
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.UpdateMachineRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateMachineCommand{
		ID:          id,
		MachineName: req.MachineName,
		MachineType: req.MachineType,
		IPAddress:   req.IPAddress,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Machine updated successfully", result)
}

// DeleteMachine handles DELETE /machines/:id
func (h *MachineHandler) DeleteMachine(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "machine")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Machine deleted successfully", nil)
}
