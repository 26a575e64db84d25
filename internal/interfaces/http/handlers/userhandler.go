package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"keygate/internal/application/user/dto"
	"keygate/internal/application/user/usecases"
	"keygate/internal/shared/logger"
	"keygate/internal/shared/utils"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	createUC *usecases.CreateUserUseCase
	getUC    *usecases.GetUserUseCase
	listUC   *usecases.ListUsersUseCase
	updateUC *usecases.UpdateUserUseCase
	deleteUC *usecases.DeleteUserUseCase
	logger   logger.Interface
}

func NewUserHandler(
	createUC *usecases.CreateUserUseCase,
	getUC *usecases.GetUserUseCase,
	listUC *usecases.ListUsersUseCase,
	updateUC *usecases.UpdateUserUseCase,
	deleteUC *usecases.DeleteUserUseCase,
	log logger.Interface,
) *UserHandler {
	return &UserHandler{
		createUC: createUC,
		getUC:    getUC,
		listUC:   listUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		logger:   log,
	}
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateUserCommand{
		Username: req.Username,
		Email:    req.Email,
		UserType: req.UserType,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "User created successfully")
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), p.Page, p.PageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Users, result.Total, result.Page, result.PageSize)
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "user")
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

// GetUserByUsername handles GET /users/username/:username
func (h *UserHandler) GetUserByUsername(c *gin.Context) {
	result, err := h.getUC.ExecuteByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListUsersByType handles GET /users/type/:user_type
func (h *UserHandler) ListUsersByType(c *gin.Context) {
	result, err := h.listUC.ExecuteByType(c.Request.Context(), c.Param("user_type"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateUser handles PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "user")
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateUserCommand{
		ID:       id,
		Username: req.Username,
		Email:    req.Email,
		UserType: req.UserType,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User updated successfully", result)
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "user")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User deleted successfully", nil)
}
