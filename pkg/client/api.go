package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/kart-io/medreq/internal/model"
)

// Login exchanges credentials for a token and the user record.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	var out model.LoginResponse
	if err := c.Post(ctx, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a user. Most backends answer with a message only.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (*model.RegisterResponse, error) {
	var out model.RegisterResponse
	if err := c.Post(ctx, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser fetches a user by id.
func (c *Client) GetUser(ctx context.Context, id uint64) (*model.User, error) {
	var out model.User
	if err := c.Get(ctx, "/users/"+strconv.FormatUint(id, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser replaces a user's name and email.
func (c *Client) UpdateUser(ctx context.Context, id uint64, req model.UpdateUserRequest) (*model.User, error) {
	var out model.User
	if err := c.Put(ctx, "/users/"+strconv.FormatUint(id, 10), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMedicines returns the medicine catalogue.
func (c *Client) ListMedicines(ctx context.Context) ([]model.Medicine, error) {
	var out []model.Medicine
	if err := c.Get(ctx, "/medicines", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRequests fetches one page of the user's requests. userID 0 omits the filter.
func (c *Client) ListRequests(ctx context.Context, page int, userID uint64) (*model.RequestPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if userID != 0 {
		q.Set("user_id", strconv.FormatUint(userID, 10))
	}

	var out model.RequestPage
	if err := c.Get(ctx, "/requests", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRequest submits a new request.
func (c *Client) CreateRequest(ctx context.Context, payload model.CreateRequestPayload) (*model.Request, error) {
	var out model.Request
	if err := c.Post(ctx, "/requests", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// API is the subset of Client used by the views and forms.
type API interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	Register(ctx context.Context, req model.RegisterRequest) (*model.RegisterResponse, error)
	GetUser(ctx context.Context, id uint64) (*model.User, error)
	UpdateUser(ctx context.Context, id uint64, req model.UpdateUserRequest) (*model.User, error)
	ListMedicines(ctx context.Context) ([]model.Medicine, error)
	ListRequests(ctx context.Context, page int, userID uint64) (*model.RequestPage, error)
	CreateRequest(ctx context.Context, payload model.CreateRequestPayload) (*model.Request, error)
}

var _ API = (*Client)(nil)
