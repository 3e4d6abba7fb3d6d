package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shareit/sharing-service/internal/model"
)

func TestBuildListBookingsQuery(t *testing.T) {
	t.Parallel()
	now := time.Date(2030, 6, 15, 12, 0, 0, 0, time.UTC)
	base := "SELECT b.id, b.item_id, b.booker_id, b.start_date, b.end_date, b.status, " +
		"i.name as item_name, u.name as booker_name " +
		"FROM bookings b " +
		"JOIN items i on i.id = b.item_id " +
		"JOIN users u on u.id = b.booker_id "

	tests := []struct {
		name     string
		filter   model.BookingFilter
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:     "all for booker",
			filter:   model.BookingFilter{State: model.StateAll, UserID: 7},
			wantSQL:  base + "WHERE b.booker_id = $1 ORDER BY b.start_date desc",
			wantArgs: []interface{}{int64(7)},
		},
		{
			name:     "all for owner",
			filter:   model.BookingFilter{State: model.StateAll, UserID: 7, IsOwner: true},
			wantSQL:  base + "WHERE i.owner_id = $1 ORDER BY b.start_date desc",
			wantArgs: []interface{}{int64(7)},
		},
		{
			name:     "current",
			filter:   model.BookingFilter{State: model.StateCurrent, UserID: 7},
			wantSQL:  base + "WHERE b.booker_id = $1 AND b.start_date <= $2 AND b.end_date > $3 ORDER BY b.start_date desc",
			wantArgs: []interface{}{int64(7), now, now},
		},
		{
			name:     "past",
			filter:   model.BookingFilter{State: model.StatePast, UserID: 7},
			wantSQL:  base + "WHERE b.booker_id = $1 AND b.end_date < $2 ORDER BY b.start_date desc",
			wantArgs: []interface{}{int64(7), now},
		},
		{
			name:     "future",
			filter:   model.BookingFilter{State: model.StateFuture, UserID: 7},
			wantSQL:  base + "WHERE b.booker_id = $1 AND b.start_date > $2 ORDER BY b.start_date desc",
			wantArgs: []interface{}{int64(7), now},
		},
		{
			name:     "waiting",
			filter:   model.BookingFilter{State: model.StateWaiting, UserID: 7},
			wantSQL:  base + "WHERE b.booker_id = $1 AND b.status = $2 ORDER BY b.start_date desc",
			wantArgs: []interface{}{int64(7), model.StatusWaiting},
		},
		{
			name:     "rejected paged",
			filter:   model.BookingFilter{State: model.StateRejected, UserID: 7, From: 20, Size: 10},
			wantSQL:  base + "WHERE b.booker_id = $1 AND b.status = $2 ORDER BY b.start_date desc LIMIT 10 OFFSET 20",
			wantArgs: []interface{}{int64(7), model.StatusRejected},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sql, args, err := buildListBookingsQuery(tt.filter, now).ToSql()
			require.NoError(t, err)
			require.Equal(t, tt.wantSQL, sql)
			require.Equal(t, tt.wantArgs, args)
		})
	}
}
