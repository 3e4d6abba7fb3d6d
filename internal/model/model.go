package model

import (
	"fmt"
	"time"

	"github.com/shareit/sharing-service/internal/errs"
	"github.com/pkg/errors"
)

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// State is the booking listing filter dimension. CURRENT/PAST/FUTURE are
// relative to "now", WAITING/REJECTED match the status column.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState maps a query parameter to a State. Empty means ALL.
func ParseState(s string) (State, error) {
	switch State(s) {
	case "":
		return StateAll, nil
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return State(s), nil
	default:
		return "", errors.Wrap(errs.ErrBadRequest, fmt.Sprintf("Unknown state: %s", s))
	}
}

type User struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}

type Item struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	OwnerID     int64  `json:"-" db:"owner_id"`
	Available   bool   `json:"available" db:"available"`
	RequestID   *int64 `json:"requestId,omitempty" db:"request_id"`
}

type Booking struct {
	ID         int64         `json:"id" db:"id"`
	ItemID     int64         `json:"-" db:"item_id"`
	BookerID   int64         `json:"-" db:"booker_id"`
	Start      time.Time     `json:"start" db:"start_date"`
	End        time.Time     `json:"end" db:"end_date"`
	Status     BookingStatus `json:"status" db:"status"`
	ItemName   string        `json:"-" db:"item_name"`
	BookerName string        `json:"-" db:"booker_name"`

	Booker *UserRef `json:"booker,omitempty" db:"-"`
	Item   *ItemRef `json:"item,omitempty" db:"-"`
}

type UserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BuildRefs fills the embedded booker/item views from the joined columns.
func (b *Booking) BuildRefs() {
	b.Booker = &UserRef{ID: b.BookerID, Name: b.BookerName}
	b.Item = &ItemRef{ID: b.ItemID, Name: b.ItemName}
}

// BookingRef is the short booking annotation on item views.
type BookingRef struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type Comment struct {
	ID         int64     `json:"id" db:"id"`
	ItemID     int64     `json:"-" db:"item_id"`
	Text       string    `json:"text" db:"text"`
	AuthorName string    `json:"authorName" db:"author_name"`
	Created    time.Time `json:"created" db:"created"`
}

// ItemInfo is the item detail/list view: the item plus its comments and,
// for the owner, the last and next booking.
type ItemInfo struct {
	Item
	LastBooking *BookingRef `json:"lastBooking"`
	NextBooking *BookingRef `json:"nextBooking"`
	Comments    []Comment   `json:"comments"`
}

type ItemRequest struct {
	ID          int64     `json:"id" db:"id"`
	Description string    `json:"description" db:"description"`
	RequestorID int64     `json:"-" db:"requestor_id"`
	Created     time.Time `json:"created" db:"created"`
	Items       []Item    `json:"items"`
}

// BookingFilter drives the filtered booking listing. From/Size paginate
// after ordering by start descending.
type BookingFilter struct {
	State   State
	UserID  int64
	IsOwner bool
	From    int
	Size    int
}

type CreateBookingRequest struct {
	ItemID int64     `json:"itemId" validate:"required"`
	Start  time.Time `json:"start" validate:"required"`
	End    time.Time `json:"end" validate:"required,gtfield=Start"`
}

type CreateItemRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId"`
}

// ItemPatch carries a partial item update: only non-nil fields overwrite.
type ItemPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UserPatch carries a partial user update: only non-nil fields overwrite.
type UserPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

type CreateItemRequestRequest struct {
	Description string `json:"description" validate:"required"`
}
