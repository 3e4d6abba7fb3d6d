package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/shareit/sharing-service/internal/errs"
	"github.com/shareit/sharing-service/internal/model"
)

// CreateBooking validates the request against the user directory and the
// item catalog, then hands the interval to the store, which decides
// availability under lock. The created booking starts WAITING.
func (s *Service) CreateBooking(ctx context.Context, req model.CreateBookingRequest, bookerID int64) (model.Booking, error) {
	if req.Start.IsZero() || req.End.IsZero() || !req.End.After(req.Start) {
		return model.Booking{}, errors.Wrap(errs.ErrBadRequest, "end must be after start")
	}
	if _, err := s.repo.GetUser(ctx, bookerID); err != nil {
		return model.Booking{}, errors.Wrapf(err, "user %d", bookerID)
	}
	// A self-owned item resolves as not found on purpose.
	item, err := s.repo.GetItemExcludingOwner(ctx, req.ItemID, bookerID)
	if err != nil {
		return model.Booking{}, errors.Wrapf(err, "item %d", req.ItemID)
	}
	if !item.Available {
		return model.Booking{}, errors.Wrapf(errs.ErrUnavailable, "item %d", item.ID)
	}

	booking, err := s.repo.CreateBooking(ctx, model.Booking{
		ItemID:   req.ItemID,
		BookerID: bookerID,
		Start:    req.Start,
		End:      req.End,
		Status:   model.StatusWaiting,
	})
	if err != nil {
		return model.Booking{}, errors.Wrapf(err, "item %d", req.ItemID)
	}
	s.publish(ctx, booking)
	return booking, nil
}

// SetApproval is the owner decision: WAITING -> APPROVED|REJECTED, terminal
// either way. A booking not owned by ownerID is reported as not found.
func (s *Service) SetApproval(ctx context.Context, bookingID int64, approved bool, ownerID int64) (model.Booking, error) {
	booking, err := s.repo.SetBookingStatus(ctx, bookingID, ownerID, approved)
	if err != nil {
		return model.Booking{}, errors.Wrapf(err, "booking %d", bookingID)
	}
	s.publish(ctx, booking)
	return booking, nil
}

// GetBooking is visible to the item owner and the booker only: the
// owner-scoped lookup runs first, then the booker-scoped fallback.
func (s *Service) GetBooking(ctx context.Context, bookingID, userID int64) (model.Booking, error) {
	booking, err := s.repo.GetBookingForOwner(ctx, bookingID, userID)
	if err == nil {
		return booking, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return model.Booking{}, err
	}
	booking, err = s.repo.GetBookingForBooker(ctx, bookingID, userID)
	if err != nil {
		return model.Booking{}, errors.Wrapf(err, "booking %d", bookingID)
	}
	return booking, nil
}

// ListBookings returns the filtered page, newest start first. An empty page
// is a normal outcome, not an error.
func (s *Service) ListBookings(ctx context.Context, filter model.BookingFilter) ([]model.Booking, error) {
	return s.repo.ListBookings(ctx, filter)
}

func (s *Service) publish(ctx context.Context, booking model.Booking) {
	if err := s.events.Publish(ctx, model.NewBookingEvent(booking)); err != nil {
		s.log.Warn("publish booking event",
			zap.Int64("booking_id", booking.ID), zap.Error(err))
	}
}
