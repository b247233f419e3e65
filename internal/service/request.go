package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/item-sharing-service/internal/domain"
	"github.com/iliyamo/item-sharing-service/internal/model"
)

// RequestStore is the persistence surface the request service needs.
type RequestStore interface {
	Create(ctx context.Context, req *model.ItemRequest) error
	GetByID(ctx context.Context, id uint64) (model.ItemRequest, error)
	ListByRequester(ctx context.Context, requesterID uint64) ([]model.ItemRequest, error)
	ListAll(ctx context.Context, limit, offset int) ([]model.ItemRequest, error)
}

// RequestDetail is a request together with the items offered in
// answer to it.
type RequestDetail struct {
	model.ItemRequest
	Items []model.Item
}

// RequestService manages item requests (wishes for items nobody has
// listed yet).
type RequestService struct {
	requests RequestStore
	items    ItemStore
	users    UserReader
}

func NewRequestService(requests RequestStore, items ItemStore, users UserReader) *RequestService {
	return &RequestService{requests: requests, items: items, users: users}
}

// Create validates and persists a new request by requesterID.
func (s *RequestService) Create(ctx context.Context, requesterID uint64, description string) (model.ItemRequest, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return model.ItemRequest{}, err
	}
	if strings.TrimSpace(description) == "" {
		return model.ItemRequest{}, domain.NewValidation("request description is required")
	}
	req := model.ItemRequest{RequesterID: requesterID, Description: description}
	if err := s.requests.Create(ctx, &req); err != nil {
		return model.ItemRequest{}, err
	}
	return req, nil
}

// ListOwn returns the caller's requests, newest first, each with the
// items offered in answer.
func (s *RequestService) ListOwn(ctx context.Context, requesterID uint64) ([]RequestDetail, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}
	reqs, err := s.requests.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, reqs)
}

// ListAll returns all requests, newest first, paginated.
func (s *RequestService) ListAll(ctx context.Context, requesterID uint64, from, size int) ([]RequestDetail, error) {
	if from < 0 {
		return nil, domain.NewValidation("from must be non-negative")
	}
	if size <= 0 {
		return nil, domain.NewValidation("size must be positive")
	}
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}
	reqs, err := s.requests.ListAll(ctx, size, from)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, reqs)
}

// GetByID returns one request with its items. Any known user may view
// any request.
func (s *RequestService) GetByID(ctx context.Context, requesterID, requestID uint64) (RequestDetail, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return RequestDetail{}, err
	}
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RequestDetail{}, domain.NewNotFound("request not found")
		}
		return RequestDetail{}, err
	}
	items, err := s.items.ListByRequest(ctx, req.ID)
	if err != nil {
		return RequestDetail{}, err
	}
	return RequestDetail{ItemRequest: req, Items: items}, nil
}

func (s *RequestService) withItems(ctx context.Context, reqs []model.ItemRequest) ([]RequestDetail, error) {
	details := make([]RequestDetail, 0, len(reqs))
	for _, req := range reqs {
		items, err := s.items.ListByRequest(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, RequestDetail{ItemRequest: req, Items: items})
	}
	return details, nil
}

func (s *RequestService) requireUser(ctx context.Context, userID uint64) error {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewNotFound("user not found")
	}
	return nil
}
