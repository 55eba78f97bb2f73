package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	analyticsUsecases "cardly/internal/application/analytics/usecases"
	"cardly/internal/application/user/dto"
	"cardly/internal/application/user/usecases"
	"cardly/internal/shared/logger"
	"cardly/internal/shared/utils"
)

// UserHandler handles account administration and the current user's profile.
type UserHandler struct {
	createUC *usecases.CreateUserUseCase
	updateUC *usecases.UpdateUserUseCase
	toggleUC *usecases.ToggleUserStatusUseCase
	deleteUC *usecases.DeleteUserUseCase
	getUC    *usecases.GetUserUseCase
	listUC   *usecases.ListUsersUseCase
	bulkUC   *usecases.BulkUsersUseCase
	exportUC *analyticsUsecases.ExportUsersUseCase
	logger   logger.Interface
}

type UserUseCases struct {
	Create *usecases.CreateUserUseCase
	Update *usecases.UpdateUserUseCase
	Toggle *usecases.ToggleUserStatusUseCase
	Delete *usecases.DeleteUserUseCase
	Get    *usecases.GetUserUseCase
	List   *usecases.ListUsersUseCase
	Bulk   *usecases.BulkUsersUseCase
	Export *analyticsUsecases.ExportUsersUseCase
}

func NewUserHandler(ucs UserUseCases, logger logger.Interface) *UserHandler {
	return &UserHandler{
		createUC: ucs.Create,
		updateUC: ucs.Update,
		toggleUC: ucs.Toggle,
		deleteUC: ucs.Delete,
		getUC:    ucs.Get,
		listUC:   ucs.List,
		bulkUC:   ucs.Bulk,
		exportUC: ucs.Export,
		logger:   logger,
	}
}

// CreateUser handles POST /admin/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateUserRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create user", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateUserCommand{Actor: actor, Request: req})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "User created successfully")
}

// ListUsers handles GET /admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid query parameters")
		return
	}

	result, err := h.listUC.Execute(c.Request.Context(), actor, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PerPage)
}

// ExportUsers handles GET /admin/users/export?format=csv|xlsx with the listing filters.
func (h *UserHandler) ExportUsers(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid query parameters")
		return
	}

	file, err := h.exportUC.Execute(c.Request.Context(), actor, req, c.Query("format"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	sendFile(c, file)
}

// GetUser handles GET /admin/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	userID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), actor, userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetCurrentUser handles GET /me
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	result, err := h.getUC.ExecuteSelf(c.Request.Context(), actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateUser handles PATCH /admin/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	userID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req dto.UpdateUserRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update user", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateUserCommand{
		Actor:   actor,
		UserID:  userID,
		Request: req,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "User updated successfully", result)
}

// ToggleStatus handles POST /admin/users/:id/toggle-status
func (h *UserHandler) ToggleStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	userID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.toggleUC.Execute(c.Request.Context(), actor, userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "User status changed", result)
}

// DeleteUser handles DELETE /admin/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	userID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), actor, userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// BulkAction handles POST /admin/users/bulk
func (h *UserHandler) BulkAction(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.BulkUsersRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.bulkUC.Execute(c.Request.Context(), usecases.BulkUsersCommand{
		Actor:  actor,
		IDs:    req.IDs,
		Action: req.Action,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Bulk action applied", result)
}
