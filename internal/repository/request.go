package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/shareit/sharing-service/internal/errs"
	"github.com/shareit/sharing-service/internal/model"
)

var requestColumns = []string{"id", "description", "requestor_id", "created"}

func (r *repository) CreateRequest(ctx context.Context, req model.ItemRequest) (model.ItemRequest, error) {
	q, args, err := qb.Insert(requestsTableName).
		Columns("description", "requestor_id").
		Values(req.Description, req.RequestorID).
		Suffix("returning id, description, requestor_id, created").
		ToSql()
	if err != nil {
		return model.ItemRequest{}, err
	}
	var created model.ItemRequest
	if err := r.db.GetContext(ctx, &created, q, args...); err != nil {
		r.log.Error("CreateRequest", zap.String("q", q), zap.Any("args", args))
		return model.ItemRequest{}, err
	}
	return created, nil
}

func (r *repository) GetRequest(ctx context.Context, id int64) (model.ItemRequest, error) {
	q, args, err := qb.Select(requestColumns...).
		From(requestsTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.ItemRequest{}, err
	}
	var req model.ItemRequest
	if err := r.db.GetContext(ctx, &req, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ItemRequest{}, errs.ErrNotFound
		}
		return model.ItemRequest{}, err
	}
	return req, nil
}

func (r *repository) ListOwnRequests(ctx context.Context, userID int64) ([]model.ItemRequest, error) {
	q, args, err := qb.Select(requestColumns...).
		From(requestsTableName).
		Where(sq.Eq{"requestor_id": userID}).
		OrderBy("created desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	reqs := make([]model.ItemRequest, 0)
	if err := r.db.SelectContext(ctx, &reqs, q, args...); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *repository) ListOtherRequests(ctx context.Context, userID int64, from, size int) ([]model.ItemRequest, error) {
	q := qb.Select(requestColumns...).
		From(requestsTableName).
		Where(sq.NotEq{"requestor_id": userID}).
		OrderBy("created desc")
	if size > 0 {
		q = q.Limit(uint64(size)).Offset(uint64(from))
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	reqs := make([]model.ItemRequest, 0)
	if err := r.db.SelectContext(ctx, &reqs, query, args...); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *repository) ListItemsByRequest(ctx context.Context, requestID int64) ([]model.Item, error) {
	q, args, err := qb.Select(itemColumns...).
		From(itemsTableName).
		Where(sq.Eq{"request_id": requestID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.Item, 0)
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}
