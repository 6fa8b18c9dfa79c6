package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
)

type ColumnHandler struct {
	columnService service.ColumnService
	logger        *zap.Logger
}

func NewColumnHandler(columnService service.ColumnService, logger *zap.Logger) *ColumnHandler {
	return &ColumnHandler{
		columnService: columnService,
		logger:        logger,
	}
}

// CreateColumn godoc
// @Summary      Add a column
// @Description  Appends a column after the board's last column. Requires edit access.
// @Tags         columns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        request body dto.CreateColumnRequest true "Column"
// @Success      201 {object} response.SuccessResponse{data=dto.ColumnResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /boards/{boardId}/columns [post]
func (h *ColumnHandler) CreateColumn(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "boardId", "board")
	if !ok {
		return
	}

	var req dto.CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	column, err := h.columnService.CreateColumn(c.Request.Context(), userID, boardID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, column)
}

// DeleteColumn godoc
// @Summary      Delete a column
// @Description  Deletes the column and its cards. Requires edit access.
// @Tags         columns
// @Produce      json
// @Security     BearerAuth
// @Param        columnId path string true "Column ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /columns/{columnId} [delete]
func (h *ColumnHandler) DeleteColumn(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	columnID, ok := uuidParam(c, "columnId", "column")
	if !ok {
		return
	}

	if err := h.columnService.DeleteColumn(c.Request.Context(), userID, columnID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}
