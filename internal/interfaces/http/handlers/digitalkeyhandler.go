package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"keygate/internal/application/digitalkey/dto"
	"keygate/internal/application/digitalkey/usecases"
	"keygate/internal/shared/logger"
	"keygate/internal/shared/utils"
)

// DigitalKeyHandler handles HTTP requests for digital keys and their
// mirrored snapshots.
type DigitalKeyHandler struct {
	createUC       *usecases.CreateDigitalKeyUseCase
	getUC          *usecases.GetDigitalKeyUseCase
	listUC         *usecases.ListDigitalKeysUseCase
	updateUC       *usecases.UpdateDigitalKeyUseCase
	deleteUC       *usecases.DeleteDigitalKeyUseCase
	listMirroredUC *usecases.ListMirroredKeysUseCase
	downloadUC     *usecases.DownloadMirroredKeyUseCase
	logger         logger.Interface
}

// DigitalKeyUseCases groups the use cases the handler delegates to.
type DigitalKeyUseCases struct {
	Create       *usecases.CreateDigitalKeyUseCase
	Get          *usecases.GetDigitalKeyUseCase
	List         *usecases.ListDigitalKeysUseCase
	Update       *usecases.UpdateDigitalKeyUseCase
	Delete       *usecases.DeleteDigitalKeyUseCase
	ListMirrored *usecases.ListMirroredKeysUseCase
	Download     *usecases.DownloadMirroredKeyUseCase
}

func NewDigitalKeyHandler(ucs DigitalKeyUseCases, log logger.Interface) *DigitalKeyHandler {
	return &DigitalKeyHandler{
		createUC:       ucs.Create,
		getUC:          ucs.Get,
		listUC:         ucs.List,
		updateUC:       ucs.Update,
		deleteUC:       ucs.Delete,
		listMirroredUC: ucs.ListMirrored,
		downloadUC:     ucs.Download,
		logger:         log,
	}
}

// CreateDigitalKey handles POST /digital-keys
func (h *DigitalKeyHandler) CreateDigitalKey(c *gin.Context) {
	var req dto.DigitalKeyRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateDigitalKeyCommand{
		KeyName:   req.KeyName,
		KeyValue:  req.KeyValue,
		Owner:     req.Owner,
		MachineID: req.MachineID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Digital key created successfully")
}

// ListDigitalKeys handles GET /digital-keys
func (h *DigitalKeyHandler) ListDigitalKeys(c *gin.Context) {
	result, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetDigitalKey handles GET /digital-keys/:id
func (h *DigitalKeyHandler) GetDigitalKey(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "digital key")
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

// GetDigitalKeyByName handles GET /digital-keys/name/:key_name
func (h *DigitalKeyHandler) GetDigitalKeyByName(c *gin.Context) {
	result, err := h.getUC.ExecuteByName(c.Request.Context(), c.Param("key_name"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListDigitalKeysByMachine handles GET /digital-keys/machine/:machine_id
func (h *DigitalKeyHandler) ListDigitalKeysByMachine(c *gin.Context) {
	machineID, err := utils.ParseIDParam(c, "machine_id", "machine")
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.listUC.ExecuteByMachine(c.Request.Context(), machineID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListDigitalKeysByOwner handles GET /digital-keys/owner/:owner
func (h *DigitalKeyHandler) ListDigitalKeysByOwner(c *gin.Context) {
	result, err := h.listUC.ExecuteByOwner(c.Request.Context(), c.Param("owner"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateDigitalKey handles PUT /digital-keys/:id
func (h *DigitalKeyHandler) UpdateDigitalKey(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "digital key")
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.DigitalKeyRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateDigitalKeyCommand{
		ID:        id,
		KeyName:   req.KeyName,
		KeyValue:  req.KeyValue,
		Owner:     req.Owner,
		MachineID: req.MachineID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Digital key updated successfully", result)
}

// DeleteDigitalKey handles DELETE /digital-keys/:id
func (h *DigitalKeyHandler) DeleteDigitalKey(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "digital key")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Digital key deleted successfully", nil)
}

// ListMirroredKeys handles GET /digital-keys/mirror/list
func (h *DigitalKeyHandler) ListMirroredKeys(c *gin.Context) {
	records := h.listMirroredUC.Execute(c.Request.Context())
	utils.SuccessResponse(c, http.StatusOK, "", records)
}

// DownloadMirroredKey handles GET /digital-keys/mirror/download/:id/:key_name
func (h *DigitalKeyHandler) DownloadMirroredKey(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "digital key")
	if err != nil {
		respondError(c, err)
		return
	}

	record, err := h.downloadUC.Execute(c.Request.Context(), id, c.Param("key_name"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", record)
}
