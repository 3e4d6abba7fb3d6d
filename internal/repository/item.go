package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/shareit/sharing-service/internal/errs"
	"github.com/shareit/sharing-service/internal/model"
)

var itemColumns = []string{"id", "name", "description", "owner_id", "available", "request_id"}

func (r *repository) CreateItem(ctx context.Context, item model.Item) (model.Item, error) {
	q, args, err := qb.Insert(itemsTableName).
		Columns("name", "description", "owner_id", "available", "request_id").
		Values(item.Name, item.Description, item.OwnerID, item.Available, item.RequestID).
		Suffix("returning " + itemColumnList()).
		ToSql()
	if err != nil {
		return model.Item{}, err
	}
	var created model.Item
	if err := r.db.GetContext(ctx, &created, q, args...); err != nil {
		r.log.Error("CreateItem", zap.String("q", q), zap.Any("args", args))
		return model.Item{}, err
	}
	return created, nil
}

func (r *repository) GetItem(ctx context.Context, id int64) (model.Item, error) {
	return r.getItem(ctx, sq.Eq{"id": id})
}

// GetItemExcludingOwner resolves an item only when it is not owned by
// userID. A self-owned item is indistinguishable from an absent one.
func (r *repository) GetItemExcludingOwner(ctx context.Context, id, userID int64) (model.Item, error) {
	return r.getItem(ctx, sq.And{sq.Eq{"id": id}, sq.NotEq{"owner_id": userID}})
}

func (r *repository) getItem(ctx context.Context, pred sq.Sqlizer) (model.Item, error) {
	q, args, err := qb.Select(itemColumns...).
		From(itemsTableName).
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Item{}, err
	}
	var item model.Item
	if err := r.db.GetContext(ctx, &item, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Item{}, errs.ErrNotFound
		}
		return model.Item{}, err
	}
	return item, nil
}

func (r *repository) ListItemsByOwner(ctx context.Context, ownerID int64, from, size int) ([]model.Item, error) {
	q := qb.Select(itemColumns...).
		From(itemsTableName).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("id")
	if size > 0 {
		q = q.Limit(uint64(size)).Offset(uint64(from))
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.Item, 0)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) SearchItems(ctx context.Context, text string, from, size int) ([]model.Item, error) {
	pattern := "%" + text + "%"
	q := qb.Select(itemColumns...).
		From(itemsTableName).
		Where(sq.Eq{"available": true}).
		Where(sq.Or{sq.ILike{"name": pattern}, sq.ILike{"description": pattern}}).
		OrderBy("id")
	if size > 0 {
		q = q.Limit(uint64(size)).Offset(uint64(from))
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.Item, 0)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItem applies only the non-nil patch fields, scoped to the owner.
func (r *repository) UpdateItem(ctx context.Context, id, ownerID int64, patch model.ItemPatch) (model.Item, error) {
	upd := qb.Update(itemsTableName).
		Where(sq.Eq{"id": id}).
		Where(sq.Eq{"owner_id": ownerID})
	changed := false
	if patch.Name != nil {
		upd = upd.Set("name", *patch.Name)
		changed = true
	}
	if patch.Description != nil {
		upd = upd.Set("description", *patch.Description)
		changed = true
	}
	if patch.Available != nil {
		upd = upd.Set("available", *patch.Available)
		changed = true
	}
	if !changed {
		return r.getItem(ctx, sq.And{sq.Eq{"id": id}, sq.Eq{"owner_id": ownerID}})
	}
	q, args, err := upd.Suffix("returning " + itemColumnList()).ToSql()
	if err != nil {
		return model.Item{}, err
	}
	var item model.Item
	if err := r.db.GetContext(ctx, &item, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Item{}, errs.ErrNotFound
		}
		return model.Item{}, err
	}
	return item, nil
}

func (r *repository) DeleteItem(ctx context.Context, id, ownerID int64) error {
	q, args, err := qb.Delete(itemsTableName).
		Where(sq.Eq{"id": id}).
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) CreateComment(ctx context.Context, itemID, authorID int64, text string) (model.Comment, error) {
	q := fmt.Sprintf(`insert into %s (item_id, author_id, text)
	values ($1, $2, $3)
	returning id, item_id, text, created,
		(select name from %s where id = $2) as author_name`,
		commentsTableName, usersTableName)

	var comment model.Comment
	if err := r.db.GetContext(ctx, &comment, q, itemID, authorID, text); err != nil {
		r.log.Error("CreateComment", zap.String("q", q))
		return model.Comment{}, err
	}
	return comment, nil
}

func (r *repository) ListComments(ctx context.Context, itemID int64) ([]model.Comment, error) {
	q, args, err := qb.Select("c.id", "c.item_id", "c.text", "u.name as author_name", "c.created").
		From(commentsTableName + " c").
		Join(fmt.Sprintf("%s u on u.id = c.author_id", usersTableName)).
		Where(sq.Eq{"c.item_id": itemID}).
		OrderBy("c.created").
		ToSql()
	if err != nil {
		return nil, err
	}
	comments := make([]model.Comment, 0)
	if err := r.db.SelectContext(ctx, &comments, q, args...); err != nil {
		return nil, err
	}
	return comments, nil
}

func itemColumnList() string {
	return "id, name, description, owner_id, available, request_id"
}
