package handler

import (
	"context"

	"github.com/google/uuid"

	"kanban-board-api/internal/dto"
)

// MockBoardService is a mock implementation of BoardService
type MockBoardService struct {
	CreateBoardFunc func(ctx context.Context, userID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardDetailResponse, error)
	GetBoardFunc    func(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardDetailResponse, error)
	ListBoardsFunc  func(ctx context.Context, userID uuid.UUID) (*dto.BoardListResponse, error)
	DeleteBoardFunc func(ctx context.Context, userID, boardID uuid.UUID) error
}

func (m *MockBoardService) CreateBoard(ctx context.Context, userID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardDetailResponse, error) {
	if m.CreateBoardFunc != nil {
		return m.CreateBoardFunc(ctx, userID, req)
	}
	return nil, nil
}

func (m *MockBoardService) GetBoard(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardDetailResponse, error) {
	if m.GetBoardFunc != nil {
		return m.GetBoardFunc(ctx, userID, boardID)
	}
	return nil, nil
}

func (m *MockBoardService) ListBoards(ctx context.Context, userID uuid.UUID) (*dto.BoardListResponse, error) {
	if m.ListBoardsFunc != nil {
		return m.ListBoardsFunc(ctx, userID)
	}
	return &dto.BoardListResponse{}, nil
}

func (m *MockBoardService) DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) error {
	if m.DeleteBoardFunc != nil {
		return m.DeleteBoardFunc(ctx, userID, boardID)
	}
	return nil
}

// MockCardService is a mock implementation of CardService
type MockCardService struct {
	CreateCardFunc func(ctx context.Context, userID, columnID uuid.UUID, req *dto.CreateCardRequest) (*dto.CardResponse, error)
	UpdateCardFunc func(ctx context.Context, userID, cardID uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error)
	MoveCardFunc   func(ctx context.Context, userID, cardID uuid.UUID, req *dto.MoveCardRequest) (*dto.CardResponse, error)
	DeleteCardFunc func(ctx context.Context, userID, cardID uuid.UUID) error
}

func (m *MockCardService) CreateCard(ctx context.Context, userID, columnID uuid.UUID, req *dto.CreateCardRequest) (*dto.CardResponse, error) {
	if m.CreateCardFunc != nil {
		return m.CreateCardFunc(ctx, userID, columnID, req)
	}
	return nil, nil
}

func (m *MockCardService) UpdateCard(ctx context.Context, userID, cardID uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error) {
	if m.UpdateCardFunc != nil {
		return m.UpdateCardFunc(ctx, userID, cardID, req)
	}
	return nil, nil
}

func (m *MockCardService) MoveCard(ctx context.Context, userID, cardID uuid.UUID, req *dto.MoveCardRequest) (*dto.CardResponse, error) {
	if m.MoveCardFunc != nil {
		return m.MoveCardFunc(ctx, userID, cardID, req)
	}
	return nil, nil
}

func (m *MockCardService) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	if m.DeleteCardFunc != nil {
		return m.DeleteCardFunc(ctx, userID, cardID)
	}
	return nil
}

// MockShareService is a mock implementation of ShareService
type MockShareService struct {
	ShareBoardFunc       func(ctx context.Context, userID, boardID uuid.UUID, req *dto.ShareBoardRequest) (*dto.ShareBoardResponse, error)
	UpdatePermissionFunc func(ctx context.Context, userID, boardID, targetUserID uuid.UUID, req *dto.UpdateShareRequest) (*dto.ShareResponse, error)
	RevokeFunc           func(ctx context.Context, userID, boardID, targetUserID uuid.UUID) error
	ListSharesFunc       func(ctx context.Context, userID, boardID uuid.UUID) ([]dto.ShareResponse, error)
}

func (m *MockShareService) ShareBoard(ctx context.Context, userID, boardID uuid.UUID, req *dto.ShareBoardRequest) (*dto.ShareBoardResponse, error) {
	if m.ShareBoardFunc != nil {
		return m.ShareBoardFunc(ctx, userID, boardID, req)
	}
	return nil, nil
}

func (m *MockShareService) UpdatePermission(ctx context.Context, userID, boardID, targetUserID uuid.UUID, req *dto.UpdateShareRequest) (*dto.ShareResponse, error) {
	if m.UpdatePermissionFunc != nil {
		return m.UpdatePermissionFunc(ctx, userID, boardID, targetUserID, req)
	}
	return nil, nil
}

func (m *MockShareService) Revoke(ctx context.Context, userID, boardID, targetUserID uuid.UUID) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, userID, boardID, targetUserID)
	}
	return nil
}

func (m *MockShareService) ListShares(ctx context.Context, userID, boardID uuid.UUID) ([]dto.ShareResponse, error) {
	if m.ListSharesFunc != nil {
		return m.ListSharesFunc(ctx, userID, boardID)
	}
	return []dto.ShareResponse{}, nil
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	RegisterFunc             func(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	LoginFunc                func(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	LogoutFunc               func(ctx context.Context, token string) error
	GetUserFunc              func(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	SetDisplayPreferenceFunc func(ctx context.Context, userID uuid.UUID, darkMode bool) (*dto.UserResponse, error)
}

func (m *MockUserService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*dto.UserResponse, error) {
	return nil, nil
}

func (m *MockUserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockUserService) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockUserService) SetDisplayPreference(ctx context.Context, userID uuid.UUID, darkMode bool) (*dto.UserResponse, error) {
	if m.SetDisplayPreferenceFunc != nil {
		return m.SetDisplayPreferenceFunc(ctx, userID, darkMode)
	}
	return nil, nil
}
