package clients

import (
	"context"
	"fmt"
	"net/http"

	"food-platform/order-svc/internal/domain"
	"food-platform/order-svc/internal/service"

	"github.com/shopspring/decimal"
)

// IdentityClient talks to user-svc.
type IdentityClient struct {
	baseURL string
	client  HTTPClient
}

func NewIdentityClient(baseURL string, client HTTPClient) *IdentityClient {
	return &IdentityClient{baseURL: baseURL, client: client}
}

func (c *IdentityClient) GetUser(ctx context.Context, userID int) domain.Lookup[domain.User] {
	return lookup[domain.User](ctx, c.client, fmt.Sprintf("%s/api/users/%d", c.baseURL, userID))
}

// GetAllAddresses treats an unknown user as having no addresses.
func (c *IdentityClient) GetAllAddresses(ctx context.Context, userID int) ([]domain.Address, error) {
	res := lookup[[]domain.Address](ctx, c.client, fmt.Sprintf("%s/api/users/%d/addresses", c.baseURL, userID))
	switch res.Status {
	case domain.LookupNotFound:
		return []domain.Address{}, nil
	case domain.LookupUnavailable:
		return nil, res.Err
	}
	return res.Value, nil
}

type walletUpdate struct {
	Balance decimal.Decimal `json:"balance"`
}

func (c *IdentityClient) UpdateWalletBalance(ctx context.Context, userID int, balance decimal.Decimal) error {
	url := fmt.Sprintf("%s/api/users/%d/wallet", c.baseURL, userID)
	return send(ctx, c.client, http.MethodPut, url, walletUpdate{Balance: balance})
}

var _ service.IdentityClient = (*IdentityClient)(nil)
