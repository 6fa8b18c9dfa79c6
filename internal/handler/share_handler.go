package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
)

type ShareHandler struct {
	shareService service.ShareService
	logger       *zap.Logger
}

func NewShareHandler(shareService service.ShareService, logger *zap.Logger) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
		logger:       logger,
	}
}

// ListShares godoc
// @Summary      List shares
// @Description  Users the board is shared with. Owner only.
// @Tags         shares
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ShareResponse}
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /boards/{boardId}/shares [get]
func (h *ShareHandler) ListShares(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "boardId", "board")
	if !ok {
		return
	}

	shares, err := h.shareService.ListShares(c.Request.Context(), userID, boardID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, shares)
}

// ShareBoard godoc
// @Summary      Share a board
// @Description  Grants view or edit access to the user registered under email. Owner only.
// @Description  An existing share is returned unchanged with alreadyShared set.
// @Tags         shares
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        request body dto.ShareBoardRequest true "Share"
// @Success      201 {object} response.SuccessResponse{data=dto.ShareBoardResponse} "Shared"
// @Success      200 {object} response.SuccessResponse{data=dto.ShareBoardResponse} "Already shared"
// @Failure      400 {object} response.ErrorResponse "Invalid level or self share"
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse "Board or user not found"
// @Router       /boards/{boardId}/shares [post]
func (h *ShareHandler) ShareBoard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "boardId", "board")
	if !ok {
		return
	}

	var req dto.ShareBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.shareService.ShareBoard(c.Request.Context(), userID, boardID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	if result.AlreadyShared {
		response.SendSuccess(c, http.StatusOK, result)
		return
	}
	response.SendSuccess(c, http.StatusCreated, result)
}

// UpdateShare godoc
// @Summary      Change a share's level
// @Tags         shares
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        userId path string true "User ID (UUID)"
// @Param        request body dto.UpdateShareRequest true "Level"
// @Success      200 {object} response.SuccessResponse{data=dto.ShareResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse "Board or share not found"
// @Router       /boards/{boardId}/shares/{userId} [put]
func (h *ShareHandler) UpdateShare(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "boardId", "board")
	if !ok {
		return
	}
	targetID, ok := uuidParam(c, "userId", "user")
	if !ok {
		return
	}

	var req dto.UpdateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	share, err := h.shareService.UpdatePermission(c.Request.Context(), userID, boardID, targetID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, share)
}

// RevokeShare godoc
// @Summary      Revoke a share
// @Description  Removes the user's access. Revoking a missing share succeeds.
// @Tags         shares
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        userId path string true "User ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /boards/{boardId}/shares/{userId} [delete]
func (h *ShareHandler) RevokeShare(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "boardId", "board")
	if !ok {
		return
	}
	targetID, ok := uuidParam(c, "userId", "user")
	if !ok {
		return
	}

	if err := h.shareService.Revoke(c.Request.Context(), userID, boardID, targetID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}
