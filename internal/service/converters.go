package service

import (
	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
)

func toUserResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		DarkMode:  user.DarkMode,
		CreatedAt: user.CreatedAt,
	}
}

func toCardResponse(card *domain.Card) dto.CardResponse {
	return dto.CardResponse{
		ID:          card.ID,
		ColumnID:    card.ColumnID,
		Title:       card.Title,
		Description: card.Description,
		Position:    card.Position,
		CreatedAt:   card.CreatedAt,
	}
}

func toColumnResponse(column *domain.Column) dto.ColumnResponse {
	cards := make([]dto.CardResponse, 0, len(column.Cards))
	for i := range column.Cards {
		cards = append(cards, toCardResponse(&column.Cards[i]))
	}
	return dto.ColumnResponse{
		ID:       column.ID,
		BoardID:  column.BoardID,
		Title:    column.Title,
		Position: column.Position,
		Cards:    cards,
	}
}

func toBoardSummary(board *domain.Board, level domain.AccessLevel) dto.BoardSummaryResponse {
	return dto.BoardSummaryResponse{
		ID:          board.ID,
		Title:       board.Title,
		OwnerID:     board.OwnerID,
		AccessLevel: level.String(),
		CreatedAt:   board.CreatedAt,
	}
}

func toBoardDetail(board *domain.Board, level domain.AccessLevel) *dto.BoardDetailResponse {
	columns := make([]dto.ColumnResponse, 0, len(board.Columns))
	for i := range board.Columns {
		columns = append(columns, toColumnResponse(&board.Columns[i]))
	}
	return &dto.BoardDetailResponse{
		ID:          board.ID,
		Title:       board.Title,
		OwnerID:     board.OwnerID,
		AccessLevel: level.String(),
		CanEdit:     level.CanEdit(),
		IsOwner:     level == domain.AccessOwn,
		Columns:     columns,
		CreatedAt:   board.CreatedAt,
		UpdatedAt:   board.UpdatedAt,
	}
}

func shareLevelOf(share *domain.Share) domain.ShareLevel {
	if share.CanEdit {
		return domain.ShareLevelEdit
	}
	return domain.ShareLevelView
}

func toShareResponse(share *domain.Share, user *domain.User) dto.ShareResponse {
	resp := dto.ShareResponse{
		UserID:    share.UserID,
		BoardID:   share.BoardID,
		Level:     string(shareLevelOf(share)),
		CanEdit:   share.CanEdit,
		CreatedAt: share.CreatedAt,
	}
	if user != nil {
		resp.Username = user.Username
		resp.Email = user.Email
	}
	return resp
}
