package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"food-platform/order-svc/internal/domain"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

var ErrUnexpectedStatus = errors.New("unexpected response status")

func newRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// lookup performs a GET and classifies the outcome: 404 is NotFound, any
// other non-2xx status or transport failure is Unavailable.
func lookup[T any](ctx context.Context, client HTTPClient, url string) domain.Lookup[T] {
	req, err := newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Unavailable[T](err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return domain.Unavailable[T](err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.NotFound[T]()
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return domain.Unavailable[T](fmt.Errorf("%w: GET %s: %d", ErrUnexpectedStatus, url, resp.StatusCode))
	}

	var value T
	if err := json.NewDecoder(resp.Body).Decode(&value); err != nil {
		return domain.Unavailable[T](fmt.Errorf("decode %s: %w", url, err))
	}
	return domain.Found(value)
}

// send performs a request whose response body is ignored.
func send(ctx context.Context, client HTTPClient, method, url string, body any) error {
	req, err := newRequest(ctx, method, url, body)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s %s: %d", ErrUnexpectedStatus, method, url, resp.StatusCode)
	}
	return nil
}
