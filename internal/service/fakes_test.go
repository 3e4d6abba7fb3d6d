package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shareit/sharing-service/internal/errs"
	"github.com/shareit/sharing-service/internal/model"
	"github.com/shareit/sharing-service/internal/repository"
)

// fakeRepo is an in-memory Repository. The single mutex makes every
// check-then-act method as atomic as the SQL transactions it stands in for.
type fakeRepo struct {
	repository.Repository

	mu       sync.Mutex
	users    map[int64]model.User
	items    map[int64]model.Item
	bookings map[int64]*model.Booking
	comments []model.Comment
	nextID   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:    make(map[int64]model.User),
		items:    make(map[int64]model.Item),
		bookings: make(map[int64]*model.Booking),
	}
}

func (f *fakeRepo) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeRepo) addUser(name string) model.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := model.User{ID: f.id(), Name: name, Email: name + "@example.com"}
	f.users[u.ID] = u
	return u
}

func (f *fakeRepo) addItem(name string, ownerID int64, available bool) model.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	item := model.Item{ID: f.id(), Name: name, Description: name, OwnerID: ownerID, Available: available}
	f.items[item.ID] = item
	return item
}

func (f *fakeRepo) addBooking(itemID, bookerID int64, start, end time.Time, status model.BookingStatus) model.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := model.Booking{
		ID: f.id(), ItemID: itemID, BookerID: bookerID,
		Start: start, End: end, Status: status,
		ItemName: f.items[itemID].Name, BookerName: f.users[bookerID].Name,
	}
	f.bookings[b.ID] = &b
	return b
}

func (f *fakeRepo) GetUser(_ context.Context, id int64) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return model.User{}, errs.ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) GetItem(_ context.Context, id int64) (model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return model.Item{}, errs.ErrNotFound
	}
	return item, nil
}

func (f *fakeRepo) GetItemExcludingOwner(_ context.Context, id, userID int64) (model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok || item.OwnerID == userID {
		return model.Item{}, errs.ErrNotFound
	}
	return item, nil
}

func overlaps(a, b *model.Booking) bool {
	return a.ItemID == b.ItemID && a.Start.Before(b.End) && a.End.After(b.Start)
}

func (f *fakeRepo) hasApprovedOverlap(b *model.Booking, exceptID int64) bool {
	for _, other := range f.bookings {
		if other.ID != exceptID && other.Status == model.StatusApproved && overlaps(other, b) {
			return true
		}
	}
	return false
}

func (f *fakeRepo) CreateBooking(_ context.Context, booking model.Booking) (model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[booking.ItemID]
	if !ok {
		return model.Booking{}, errs.ErrNotFound
	}
	if !item.Available || f.hasApprovedOverlap(&booking, 0) {
		return model.Booking{}, errs.ErrUnavailable
	}
	booking.ID = f.id()
	booking.Status = model.StatusWaiting
	booking.ItemName = item.Name
	booking.BookerName = f.users[booking.BookerID].Name
	b := booking
	f.bookings[b.ID] = &b
	return f.view(b), nil
}

func (f *fakeRepo) SetBookingStatus(_ context.Context, id, ownerID int64, approved bool) (model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || f.items[b.ItemID].OwnerID != ownerID {
		return model.Booking{}, errs.ErrNotFound
	}
	if b.Status != model.StatusWaiting {
		return model.Booking{}, errs.ErrUnchangeableStatus
	}
	if approved {
		if f.hasApprovedOverlap(b, id) {
			return model.Booking{}, errs.ErrUnavailable
		}
		b.Status = model.StatusApproved
	} else {
		b.Status = model.StatusRejected
	}
	return f.view(*b), nil
}

func (f *fakeRepo) GetBookingForOwner(_ context.Context, id, ownerID int64) (model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || f.items[b.ItemID].OwnerID != ownerID {
		return model.Booking{}, errs.ErrNotFound
	}
	return f.view(*b), nil
}

func (f *fakeRepo) GetBookingForBooker(_ context.Context, id, bookerID int64) (model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.BookerID != bookerID {
		return model.Booking{}, errs.ErrNotFound
	}
	return f.view(*b), nil
}

func (f *fakeRepo) ListBookings(_ context.Context, filter model.BookingFilter) ([]model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	matched := make([]model.Booking, 0)
	for _, b := range f.bookings {
		if filter.IsOwner {
			if f.items[b.ItemID].OwnerID != filter.UserID {
				continue
			}
		} else if b.BookerID != filter.UserID {
			continue
		}
		switch filter.State {
		case model.StateCurrent:
			if b.Start.After(now) || !b.End.After(now) {
				continue
			}
		case model.StatePast:
			if !b.End.Before(now) {
				continue
			}
		case model.StateFuture:
			if !b.Start.After(now) {
				continue
			}
		case model.StateWaiting:
			if b.Status != model.StatusWaiting {
				continue
			}
		case model.StateRejected:
			if b.Status != model.StatusRejected {
				continue
			}
		}
		matched = append(matched, f.view(*b))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Start.After(matched[j].Start) })
	if filter.Size > 0 {
		if filter.From >= len(matched) {
			return []model.Booking{}, nil
		}
		end := filter.From + filter.Size
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[filter.From:end]
	}
	return matched, nil
}

func (f *fakeRepo) LastBooking(_ context.Context, itemID, ownerID int64, now time.Time) (*model.BookingRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var last *model.Booking
	for _, b := range f.bookings {
		if b.ItemID != itemID || f.items[b.ItemID].OwnerID != ownerID || !b.End.Before(now) {
			continue
		}
		if last == nil || b.End.After(last.End) {
			last = b
		}
	}
	if last == nil {
		return nil, nil
	}
	return &model.BookingRef{ID: last.ID, BookerID: last.BookerID}, nil
}

func (f *fakeRepo) NextBooking(_ context.Context, itemID, ownerID int64, now time.Time) (*model.BookingRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var next *model.Booking
	for _, b := range f.bookings {
		if b.ItemID != itemID || f.items[b.ItemID].OwnerID != ownerID || !b.Start.After(now) {
			continue
		}
		if next == nil || b.Start.Before(next.Start) {
			next = b
		}
	}
	if next == nil {
		return nil, nil
	}
	return &model.BookingRef{ID: next.ID, BookerID: next.BookerID}, nil
}

func (f *fakeRepo) HasFinishedBooking(_ context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ItemID == itemID && b.BookerID == bookerID &&
			b.Status == model.StatusApproved && b.End.Before(now) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CreateComment(_ context.Context, itemID, authorID int64, text string) (model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := model.Comment{
		ID: f.id(), ItemID: itemID, Text: text,
		AuthorName: f.users[authorID].Name, Created: time.Now(),
	}
	f.comments = append(f.comments, c)
	return c, nil
}

func (f *fakeRepo) ListComments(_ context.Context, itemID int64) ([]model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Comment, 0)
	for _, c := range f.comments {
		if c.ItemID == itemID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepo) view(b model.Booking) model.Booking {
	b.BuildRefs()
	return b
}
