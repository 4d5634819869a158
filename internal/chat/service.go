//go:generate go run go.uber.org/mock/mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

package chat

import (
	"context"

	"github.com/naveenspark/parley/pkg/client"
	"github.com/naveenspark/parley/pkg/domain"
)

// Service is the remote chat API the synchronizer talks to. *client.Client implements it.
type Service interface {
	GetMe(ctx context.Context) (*domain.Caller, error)

	ListRooms(ctx context.Context) ([]domain.Room, error)
	CreateRoom(ctx context.Context, req client.CreateRoomRequest) (*domain.Room, error)
	JoinRoom(ctx context.Context, code string) (*domain.Room, error)
	UpdateRoom(ctx context.Context, id string, req client.UpdateRoomRequest) (*domain.Room, error)
	LeaveRoom(ctx context.Context, id string) error
	DeleteRoom(ctx context.Context, id string) error

	GetRoomMessages(ctx context.Context, roomID string, limit int) ([]domain.Message, error)
	SendRoomMessage(ctx context.Context, roomID, content, anonUsername string) (*domain.Message, error)

	GetChatProfile(ctx context.Context) (*domain.ChatProfile, error)
	UpdateChatProfile(ctx context.Context, displayName string) (*domain.ChatProfile, error)
}

// EventSource yields live server events. *client.Stream implements it.
type EventSource interface {
	Next(ctx context.Context) (domain.StreamEvent, error)
}

var (
	_ Service     = (*client.Client)(nil)
	_ EventSource = (*client.Stream)(nil)
)
