package tests

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"food-platform/order-svc/internal/clients"
	"food-platform/order-svc/internal/domain"
	"food-platform/order-svc/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func requestTo(method, url string) interface{} {
	return mock.MatchedBy(func(r *http.Request) bool {
		return r.Method == method && r.URL.String() == url
	})
}

func TestIdentityClient_GetUser(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		resp       *http.Response
		err        error
		wantStatus domain.LookupStatus
	}{
		{name: "found", resp: jsonResponse(http.StatusOK, `{"id":1,"wallet":"300.50","role":"customer"}`), wantStatus: domain.LookupFound},
		{name: "not_found", resp: jsonResponse(http.StatusNotFound, `{}`), wantStatus: domain.LookupNotFound},
		{name: "server_error", resp: jsonResponse(http.StatusInternalServerError, `oops`), wantStatus: domain.LookupUnavailable},
		{name: "transport_error", err: errors.New("dial tcp: connection refused"), wantStatus: domain.LookupUnavailable},
		{name: "bad_body", resp: jsonResponse(http.StatusOK, `not json`), wantStatus: domain.LookupUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			httpClient := mocks.NewHTTPClient(t)
			httpClient.On("Do", requestTo(http.MethodGet, "http://user-svc/api/users/1")).Return(tc.resp, tc.err).Once()

			res := clients.NewIdentityClient("http://user-svc", httpClient).GetUser(ctx, 1)

			assert.Equal(t, tc.wantStatus, res.Status)
			if tc.wantStatus == domain.LookupFound {
				assert.True(t, res.Value.Wallet.Equal(price("300.50")))
				assert.Equal(t, "customer", res.Value.Role)
			}
			if tc.wantStatus == domain.LookupUnavailable {
				assert.Error(t, res.Err)
			}
		})
	}
}

func TestIdentityClient_GetAllAddresses(t *testing.T) {
	ctx := context.Background()
	httpClient := mocks.NewHTTPClient(t)
	client := clients.NewIdentityClient("http://user-svc", httpClient)

	httpClient.On("Do", requestTo(http.MethodGet, "http://user-svc/api/users/1/addresses")).
		Return(jsonResponse(http.StatusOK, `[{"id":7,"user_id":1,"label":"home","line":"1 Main St"}]`), nil).Once()
	addresses, err := client.GetAllAddresses(ctx, 1)
	require.NoError(t, err)
	require.Len(t, addresses, 1)
	assert.Equal(t, 7, addresses[0].ID)

	httpClient.On("Do", requestTo(http.MethodGet, "http://user-svc/api/users/2/addresses")).
		Return(jsonResponse(http.StatusNotFound, ``), nil).Once()
	addresses, err = client.GetAllAddresses(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, addresses)

	httpClient.On("Do", requestTo(http.MethodGet, "http://user-svc/api/users/3/addresses")).
		Return(nil, errors.New("timeout")).Once()
	_, err = client.GetAllAddresses(ctx, 3)
	assert.Error(t, err)
}

func TestIdentityClient_UpdateWalletBalance(t *testing.T) {
	ctx := context.Background()
	httpClient := mocks.NewHTTPClient(t)
	client := clients.NewIdentityClient("http://user-svc", httpClient)

	httpClient.On("Do", mock.MatchedBy(func(r *http.Request) bool {
		if r.Method != http.MethodPut || r.URL.Path != "/api/users/1/wallet" {
			return false
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return false
		}
		return body["balance"] == "100.25"
	})).Return(jsonResponse(http.StatusNoContent, ``), nil).Once()
	assert.NoError(t, client.UpdateWalletBalance(ctx, 1, price("100.25")))

	httpClient.On("Do", requestTo(http.MethodPut, "http://user-svc/api/users/2/wallet")).
		Return(jsonResponse(http.StatusBadRequest, `{}`), nil).Once()
	err := client.UpdateWalletBalance(ctx, 2, price("1"))
	assert.ErrorIs(t, err, clients.ErrUnexpectedStatus)
}

func TestCatalogClient(t *testing.T) {
	ctx := context.Background()
	httpClient := mocks.NewHTTPClient(t)
	client := clients.NewCatalogClient("http://restaurant-svc", httpClient)

	httpClient.On("Do", requestTo(http.MethodGet, "http://restaurant-svc/api/restaurants/10")).
		Return(jsonResponse(http.StatusOK, `{"id":10,"name":"Pizza Place"}`), nil).Once()
	restaurant := client.GetRestaurant(ctx, 10)
	assert.Equal(t, domain.LookupFound, restaurant.Status)
	assert.Equal(t, "Pizza Place", restaurant.Value.Name)

	httpClient.On("Do", requestTo(http.MethodGet, "http://restaurant-svc/api/menu-items/100")).
		Return(jsonResponse(http.StatusOK, `{"id":100,"restaurant_id":10,"name":"Margherita","price":"9.90","available":true}`), nil).Once()
	item := client.GetMenuItem(ctx, 100)
	require.Equal(t, domain.LookupFound, item.Status)
	assert.Equal(t, 10, item.Value.RestaurantID)
	assert.True(t, item.Value.Price.Equal(price("9.9")))
	assert.True(t, item.Value.Available)

	httpClient.On("Do", requestTo(http.MethodGet, "http://restaurant-svc/api/menu-items/101")).
		Return(jsonResponse(http.StatusNotFound, ``), nil).Once()
	assert.Equal(t, domain.LookupNotFound, client.GetMenuItem(ctx, 101).Status)
}
