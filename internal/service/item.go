package service

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/shareit/sharing-service/internal/errs"
	"github.com/shareit/sharing-service/internal/model"
)

func (s *Service) CreateItem(ctx context.Context, req model.CreateItemRequest, ownerID int64) (model.Item, error) {
	if _, err := s.repo.GetUser(ctx, ownerID); err != nil {
		return model.Item{}, errors.Wrapf(err, "user %d", ownerID)
	}
	if req.RequestID != nil {
		if _, err := s.repo.GetRequest(ctx, *req.RequestID); err != nil {
			return model.Item{}, errors.Wrapf(err, "request %d", *req.RequestID)
		}
	}
	return s.repo.CreateItem(ctx, model.Item{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     ownerID,
		Available:   *req.Available,
		RequestID:   req.RequestID,
	})
}

func (s *Service) UpdateItem(ctx context.Context, itemID int64, patch model.ItemPatch, ownerID int64) (model.Item, error) {
	return s.repo.UpdateItem(ctx, itemID, ownerID, patch)
}

// GetItem returns the item with its comments; the last/next booking
// annotations are visible to the owner only.
func (s *Service) GetItem(ctx context.Context, itemID, userID int64) (model.ItemInfo, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return model.ItemInfo{}, errors.Wrapf(err, "item %d", itemID)
	}
	info := model.ItemInfo{Item: item, Comments: make([]model.Comment, 0)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		comments, err := s.repo.ListComments(gctx, itemID)
		if err != nil {
			return err
		}
		info.Comments = comments
		return nil
	})
	if item.OwnerID == userID {
		now := time.Now()
		g.Go(func() (err error) {
			info.LastBooking, err = s.repo.LastBooking(gctx, itemID, userID, now)
			return err
		})
		g.Go(func() (err error) {
			info.NextBooking, err = s.repo.NextBooking(gctx, itemID, userID, now)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return model.ItemInfo{}, err
	}
	return info, nil
}

// ListItems returns the owner's items, each annotated with the last and
// next booking.
func (s *Service) ListItems(ctx context.Context, ownerID int64, from, size int) ([]model.ItemInfo, error) {
	items, err := s.repo.ListItemsByOwner(ctx, ownerID, from, size)
	if err != nil {
		return nil, err
	}
	infos := make([]model.ItemInfo, len(items))
	now := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i := range items {
		i := i
		infos[i] = model.ItemInfo{Item: items[i], Comments: make([]model.Comment, 0)}
		g.Go(func() error {
			last, err := s.repo.LastBooking(gctx, items[i].ID, ownerID, now)
			if err != nil {
				return err
			}
			next, err := s.repo.NextBooking(gctx, items[i].ID, ownerID, now)
			if err != nil {
				return err
			}
			comments, err := s.repo.ListComments(gctx, items[i].ID)
			if err != nil {
				return err
			}
			infos[i].LastBooking, infos[i].NextBooking, infos[i].Comments = last, next, comments
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return infos, nil
}

// SearchItems matches available items by name or description. Blank text
// yields an empty list.
func (s *Service) SearchItems(ctx context.Context, text string, from, size int) ([]model.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	return s.repo.SearchItems(ctx, text, from, size)
}

func (s *Service) DeleteItem(ctx context.Context, itemID, ownerID int64) error {
	return s.repo.DeleteItem(ctx, itemID, ownerID)
}

// AddComment lets a user comment only after a completed booking of the item.
func (s *Service) AddComment(ctx context.Context, itemID int64, req model.CreateCommentRequest, authorID int64) (model.Comment, error) {
	if _, err := s.repo.GetUser(ctx, authorID); err != nil {
		return model.Comment{}, errors.Wrapf(err, "user %d", authorID)
	}
	if _, err := s.repo.GetItem(ctx, itemID); err != nil {
		return model.Comment{}, errors.Wrapf(err, "item %d", itemID)
	}
	ok, err := s.repo.HasFinishedBooking(ctx, itemID, authorID, time.Now())
	if err != nil {
		return model.Comment{}, err
	}
	if !ok {
		return model.Comment{}, errors.Wrapf(errs.ErrBadRequest,
			"user %d has no finished booking of item %d", authorID, itemID)
	}
	return s.repo.CreateComment(ctx, itemID, authorID, req.Text)
}
