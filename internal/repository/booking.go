package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/shareit/sharing-service/internal/errs"
	"github.com/shareit/sharing-service/internal/model"
)

var bookingColumns = []string{
	"b.id", "b.item_id", "b.booker_id", "b.start_date", "b.end_date", "b.status",
	"i.name as item_name", "u.name as booker_name",
}

// Strict overlap: [s1, e1) and [s2, e2) intersect iff s1 < e2 and e1 > s2.
// Only APPROVED bookings block.
const approvedOverlapQuery = `
	select exists(
		select 1 from bookings
		where item_id = $1
		  and status = 'APPROVED'
		  and start_date < $3
		  and end_date > $2
		  and id <> $4
	)`

// CreateBooking inserts a WAITING booking. The item row is locked for the
// duration of the transaction so the availability and overlap checks and the
// insert act as one unit against concurrent requests for the same item.
func (r *repository) CreateBooking(ctx context.Context, booking model.Booking) (model.Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Booking{}, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	var available bool
	lockQ := fmt.Sprintf(`select available from %s where id = $1 for update`, itemsTableName)
	if err := tx.GetContext(ctx, &available, lockQ, booking.ItemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, errs.ErrNotFound
		}
		return model.Booking{}, err
	}
	if !available {
		return model.Booking{}, errs.ErrUnavailable
	}

	var reserved bool
	if err := tx.GetContext(ctx, &reserved, approvedOverlapQuery,
		booking.ItemID, booking.Start, booking.End, int64(0)); err != nil {
		return model.Booking{}, err
	}
	if reserved {
		return model.Booking{}, errs.ErrUnavailable
	}

	q, args, err := qb.Insert(bookingsTableName).
		Columns("item_id", "booker_id", "start_date", "end_date", "status").
		Values(booking.ItemID, booking.BookerID, booking.Start, booking.End, model.StatusWaiting).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return model.Booking{}, err
	}
	var id int64
	if err := tx.GetContext(ctx, &id, q, args...); err != nil {
		r.log.Error("CreateBooking", zap.String("q", q), zap.Any("args", args))
		return model.Booking{}, err
	}

	created, err := r.getBooking(ctx, tx, sq.Eq{"b.id": id})
	if err != nil {
		return model.Booking{}, err
	}
	return created, tx.Commit()
}

// SetBookingStatus performs the owner decision. The booking row is locked
// before the terminal-state check so concurrent decisions on the same
// booking have exactly one winner. Approving re-runs the overlap check so
// two pending requests for intersecting intervals cannot both end up
// APPROVED.
func (r *repository) SetBookingStatus(ctx context.Context, id, ownerID int64, approved bool) (model.Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Booking{}, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	lockQ := fmt.Sprintf(`
	select b.item_id, b.start_date, b.end_date, b.status
	from %s b
	join %s i on i.id = b.item_id
	where b.id = $1 and i.owner_id = $2
	for update of b`, bookingsTableName, itemsTableName)

	var current struct {
		ItemID int64               `db:"item_id"`
		Start  time.Time           `db:"start_date"`
		End    time.Time           `db:"end_date"`
		Status model.BookingStatus `db:"status"`
	}
	if err := tx.GetContext(ctx, &current, lockQ, id, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, errs.ErrNotFound
		}
		return model.Booking{}, err
	}
	if current.Status != model.StatusWaiting {
		return model.Booking{}, errs.ErrUnchangeableStatus
	}

	status := model.StatusRejected
	if approved {
		var reserved bool
		if err := tx.GetContext(ctx, &reserved, approvedOverlapQuery,
			current.ItemID, current.Start, current.End, id); err != nil {
			return model.Booking{}, err
		}
		if reserved {
			return model.Booking{}, errs.ErrUnavailable
		}
		status = model.StatusApproved
	}

	q, args, err := qb.Update(bookingsTableName).
		Set("status", status).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Booking{}, err
	}
	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		return model.Booking{}, err
	}

	updated, err := r.getBooking(ctx, tx, sq.Eq{"b.id": id})
	if err != nil {
		return model.Booking{}, err
	}
	return updated, tx.Commit()
}

func (r *repository) GetBookingForOwner(ctx context.Context, id, ownerID int64) (model.Booking, error) {
	return r.getBooking(ctx, r.db, sq.And{sq.Eq{"b.id": id}, sq.Eq{"i.owner_id": ownerID}})
}

func (r *repository) GetBookingForBooker(ctx context.Context, id, bookerID int64) (model.Booking, error) {
	return r.getBooking(ctx, r.db, sq.And{sq.Eq{"b.id": id}, sq.Eq{"b.booker_id": bookerID}})
}

func (r *repository) getBooking(ctx context.Context, db sqlx.QueryerContext, pred sq.Sqlizer) (model.Booking, error) {
	q, args, err := bookingSelect().Where(pred).Limit(1).ToSql()
	if err != nil {
		return model.Booking{}, err
	}
	var booking model.Booking
	if err := sqlx.GetContext(ctx, db, &booking, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, errs.ErrNotFound
		}
		return model.Booking{}, err
	}
	booking.BuildRefs()
	return booking, nil
}

func (r *repository) ListBookings(ctx context.Context, filter model.BookingFilter) ([]model.Booking, error) {
	q, args, err := buildListBookingsQuery(filter, time.Now()).ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("ListBookings", zap.String("query", q), zap.Any("args", args))

	bookings := make([]model.Booking, 0)
	if err := r.db.SelectContext(ctx, &bookings, q, args...); err != nil {
		return nil, err
	}
	for i := range bookings {
		bookings[i].BuildRefs()
	}
	return bookings, nil
}

// buildListBookingsQuery layers the state predicate on top of the scope
// predicate and orders by start descending; paging applies after ordering.
func buildListBookingsQuery(filter model.BookingFilter, now time.Time) sq.SelectBuilder {
	q := bookingSelect()
	if filter.IsOwner {
		q = q.Where(sq.Eq{"i.owner_id": filter.UserID})
	} else {
		q = q.Where(sq.Eq{"b.booker_id": filter.UserID})
	}
	switch filter.State {
	case model.StateCurrent:
		q = q.Where(sq.LtOrEq{"b.start_date": now}).Where(sq.Gt{"b.end_date": now})
	case model.StatePast:
		q = q.Where(sq.Lt{"b.end_date": now})
	case model.StateFuture:
		q = q.Where(sq.Gt{"b.start_date": now})
	case model.StateWaiting:
		q = q.Where(sq.Eq{"b.status": model.StatusWaiting})
	case model.StateRejected:
		q = q.Where(sq.Eq{"b.status": model.StatusRejected})
	case model.StateAll:
	}
	q = q.OrderBy("b.start_date desc")
	if filter.Size > 0 {
		q = q.Limit(uint64(filter.Size)).Offset(uint64(filter.From))
	}
	return q
}

func bookingSelect() sq.SelectBuilder {
	return qb.Select(bookingColumns...).
		From(bookingsTableName + " b").
		Join(fmt.Sprintf("%s i on i.id = b.item_id", itemsTableName)).
		Join(fmt.Sprintf("%s u on u.id = b.booker_id", usersTableName))
}

// LastBooking returns the most recently ended booking of the item, owner
// scoped; nil when the item has no past bookings.
func (r *repository) LastBooking(ctx context.Context, itemID, ownerID int64, now time.Time) (*model.BookingRef, error) {
	return r.topBooking(ctx, itemID, ownerID, sq.Lt{"b.end_date": now}, "b.end_date desc")
}

// NextBooking returns the soonest upcoming booking of the item, owner
// scoped; nil when nothing is scheduled.
func (r *repository) NextBooking(ctx context.Context, itemID, ownerID int64, now time.Time) (*model.BookingRef, error) {
	return r.topBooking(ctx, itemID, ownerID, sq.Gt{"b.start_date": now}, "b.start_date")
}

func (r *repository) topBooking(ctx context.Context, itemID, ownerID int64, pred sq.Sqlizer, order string) (*model.BookingRef, error) {
	q, args, err := qb.Select("b.id", "b.booker_id").
		From(bookingsTableName + " b").
		Join(fmt.Sprintf("%s i on i.id = b.item_id", itemsTableName)).
		Where(sq.Eq{"b.item_id": itemID}).
		Where(sq.Eq{"i.owner_id": ownerID}).
		Where(pred).
		OrderBy(order).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}
	var row struct {
		ID       int64 `db:"id"`
		BookerID int64 `db:"booker_id"`
	}
	if err := r.db.GetContext(ctx, &row, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &model.BookingRef{ID: row.ID, BookerID: row.BookerID}, nil
}

// HasFinishedBooking reports whether the user has a completed (approved and
// already ended) booking of the item. Gates comment posting.
func (r *repository) HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	q := `
	select exists(
		select 1 from bookings
		where item_id = $1 and booker_id = $2 and status = 'APPROVED' and end_date < $3
	)`
	var ok bool
	if err := r.db.GetContext(ctx, &ok, q, itemID, bookerID, now); err != nil {
		return false, err
	}
	return ok, nil
}
