package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/shareit/sharing-service/internal/model"
)

func (s *Service) CreateRequest(ctx context.Context, req model.CreateItemRequestRequest, userID int64) (model.ItemRequest, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return model.ItemRequest{}, errors.Wrapf(err, "user %d", userID)
	}
	created, err := s.repo.CreateRequest(ctx, model.ItemRequest{
		Description: req.Description,
		RequestorID: userID,
	})
	if err != nil {
		return model.ItemRequest{}, err
	}
	created.Items = make([]model.Item, 0)
	return created, nil
}

// ListOwnRequests returns the caller's requests, newest first, each with
// the items offered in response.
func (s *Service) ListOwnRequests(ctx context.Context, userID int64) ([]model.ItemRequest, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, errors.Wrapf(err, "user %d", userID)
	}
	reqs, err := s.repo.ListOwnRequests(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, reqs)
}

// ListAllRequests returns other users' requests, paged.
func (s *Service) ListAllRequests(ctx context.Context, userID int64, from, size int) ([]model.ItemRequest, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, errors.Wrapf(err, "user %d", userID)
	}
	reqs, err := s.repo.ListOtherRequests(ctx, userID, from, size)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, reqs)
}

func (s *Service) GetRequest(ctx context.Context, requestID, userID int64) (model.ItemRequest, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return model.ItemRequest{}, errors.Wrapf(err, "user %d", userID)
	}
	req, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return model.ItemRequest{}, errors.Wrapf(err, "request %d", requestID)
	}
	enriched, err := s.withItems(ctx, []model.ItemRequest{req})
	if err != nil {
		return model.ItemRequest{}, err
	}
	return enriched[0], nil
}

func (s *Service) withItems(ctx context.Context, reqs []model.ItemRequest) ([]model.ItemRequest, error) {
	for i := range reqs {
		items, err := s.repo.ListItemsByRequest(ctx, reqs[i].ID)
		if err != nil {
			return nil, err
		}
		reqs[i].Items = items
	}
	return reqs, nil
}
