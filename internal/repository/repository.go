package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/shareit/sharing-service/internal/model"
)

type Repository interface {
	CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id int64, patch model.UserPatch) (model.User, error)
	DeleteUser(ctx context.Context, id int64) error

	CreateItem(ctx context.Context, item model.Item) (model.Item, error)
	GetItem(ctx context.Context, id int64) (model.Item, error)
	GetItemExcludingOwner(ctx context.Context, id, userID int64) (model.Item, error)
	ListItemsByOwner(ctx context.Context, ownerID int64, from, size int) ([]model.Item, error)
	SearchItems(ctx context.Context, text string, from, size int) ([]model.Item, error)
	UpdateItem(ctx context.Context, id, ownerID int64, patch model.ItemPatch) (model.Item, error)
	DeleteItem(ctx context.Context, id, ownerID int64) error

	CreateComment(ctx context.Context, itemID, authorID int64, text string) (model.Comment, error)
	ListComments(ctx context.Context, itemID int64) ([]model.Comment, error)

	CreateBooking(ctx context.Context, booking model.Booking) (model.Booking, error)
	SetBookingStatus(ctx context.Context, id, ownerID int64, approved bool) (model.Booking, error)
	GetBookingForOwner(ctx context.Context, id, ownerID int64) (model.Booking, error)
	GetBookingForBooker(ctx context.Context, id, bookerID int64) (model.Booking, error)
	ListBookings(ctx context.Context, filter model.BookingFilter) ([]model.Booking, error)
	LastBooking(ctx context.Context, itemID, ownerID int64, now time.Time) (*model.BookingRef, error)
	NextBooking(ctx context.Context, itemID, ownerID int64, now time.Time) (*model.BookingRef, error)
	HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)

	CreateRequest(ctx context.Context, req model.ItemRequest) (model.ItemRequest, error)
	GetRequest(ctx context.Context, id int64) (model.ItemRequest, error)
	ListOwnRequests(ctx context.Context, userID int64) ([]model.ItemRequest, error)
	ListOtherRequests(ctx context.Context, userID int64, from, size int) ([]model.ItemRequest, error)
	ListItemsByRequest(ctx context.Context, requestID int64) ([]model.Item, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	usersTableName    = `users`
	itemsTableName    = `items`
	bookingsTableName = `bookings`
	commentsTableName = `comments`
	requestsTableName = `requests`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
