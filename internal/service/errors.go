package service

import (
	"errors"

	"gorm.io/gorm"

	"kanban-board-api/internal/response"
)

// notFoundOr maps a missing row to NOT_FOUND and anything else to INTERNAL_ERROR.
// AppErrors pass through unchanged.
func notFoundOr(err error, notFoundMsg, internalMsg string) error {
	var appErr *response.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewNotFoundError(notFoundMsg, "")
	}
	return response.NewInternalError(internalMsg, err)
}
