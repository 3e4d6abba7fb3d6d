package handler

import (
	"context"

	"github.com/shareit/sharing-service/internal/model"
	"github.com/shareit/sharing-service/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type BookingService interface {
	CreateBooking(ctx context.Context, req model.CreateBookingRequest, bookerID int64) (model.Booking, error)
	SetApproval(ctx context.Context, bookingID int64, approved bool, ownerID int64) (model.Booking, error)
	GetBooking(ctx context.Context, bookingID, userID int64) (model.Booking, error)
	ListBookings(ctx context.Context, filter model.BookingFilter) ([]model.Booking, error)
}

type ItemService interface {
	CreateItem(ctx context.Context, req model.CreateItemRequest, ownerID int64) (model.Item, error)
	UpdateItem(ctx context.Context, itemID int64, patch model.ItemPatch, ownerID int64) (model.Item, error)
	GetItem(ctx context.Context, itemID, userID int64) (model.ItemInfo, error)
	ListItems(ctx context.Context, ownerID int64, from, size int) ([]model.ItemInfo, error)
	SearchItems(ctx context.Context, text string, from, size int) ([]model.Item, error)
	DeleteItem(ctx context.Context, itemID, ownerID int64) error
	AddComment(ctx context.Context, itemID int64, req model.CreateCommentRequest, authorID int64) (model.Comment, error)
}

type UserService interface {
	CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id int64, patch model.UserPatch) (model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type RequestService interface {
	CreateRequest(ctx context.Context, req model.CreateItemRequestRequest, userID int64) (model.ItemRequest, error)
	ListOwnRequests(ctx context.Context, userID int64) ([]model.ItemRequest, error)
	ListAllRequests(ctx context.Context, userID int64, from, size int) ([]model.ItemRequest, error)
	GetRequest(ctx context.Context, requestID, userID int64) (model.ItemRequest, error)
}

var (
	_ BookingService = (*service.Service)(nil)
	_ ItemService    = (*service.Service)(nil)
	_ UserService    = (*service.Service)(nil)
	_ RequestService = (*service.Service)(nil)
)
