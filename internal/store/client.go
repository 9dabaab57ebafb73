package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/ticoencargo/cartera/internal/model"
	"github.com/ticoencargo/cartera/pkg/logger"
	"github.com/ticoencargo/cartera/pkg/prom"
	"github.com/valyala/fasthttp"
)

// Collections held by the remote store.
const (
	CollectionClients      = "clients"
	CollectionTransactions = "transactions"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status code from store")
)

type Config struct {
	BaseURL         string
	APIKey          string
	Timeout         time.Duration
	MaxConns        int
	ReadBufferSize  int
	WriteBufferSize int
}

// Client talks to the remote data store over its generic collection
// API: list ordered by created_at desc, insert-returning, update-by-id
// and delete-by-id.
type Client struct {
	config *Config
	http   *fasthttp.Client
}

func NewClient(config *Config) (*Client, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}
	if config.BaseURL == "" {
		return nil, errors.New("store base url is required")
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}

	httpClient := &fasthttp.Client{
		MaxConnsPerHost:     config.MaxConns,
		ReadTimeout:         config.Timeout,
		WriteTimeout:        config.Timeout,
		MaxIdleConnDuration: 60 * time.Second,
		ReadBufferSize:      config.ReadBufferSize,
		WriteBufferSize:     config.WriteBufferSize,
	}

	logger.Info("store client initialized", "url", config.BaseURL, "timeout", config.Timeout)

	return &Client{config: config, http: httpClient}, nil
}

// ListClients fetches every client row, newest created first.
func (c *Client) ListClients(ctx context.Context) ([]*model.Client, error) {
	body, err := c.list(ctx, CollectionClients)
	if err != nil {
		return nil, err
	}

	var rows []*model.Client
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, errors.Wrap(err, "unmarshal clients")
	}
	return rows, nil
}

// ListTransactions fetches every transaction row, newest created first.
func (c *Client) ListTransactions(ctx context.Context) ([]*model.Transaction, error) {
	body, err := c.list(ctx, CollectionTransactions)
	if err != nil {
		return nil, err
	}

	var rows []*model.Transaction
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, errors.Wrap(err, "unmarshal transactions")
	}
	return rows, nil
}

// CreateClient inserts one client row and returns it with the
// store-assigned id and timestamps.
func (c *Client) CreateClient(ctx context.Context, p model.ClientCreateRequest) (*model.Client, error) {
	body, err := c.insert(ctx, CollectionClients, p)
	if err != nil {
		return nil, err
	}

	var row model.Client
	if err := json.Unmarshal(body, &row); err != nil {
		return nil, errors.Wrap(err, "unmarshal inserted client")
	}
	return &row, nil
}

// CreateTransaction inserts one transaction row and returns it with the
// store-assigned id and created_at.
func (c *Client) CreateTransaction(ctx context.Context, p model.TransactionCreateRequest) (*model.Transaction, error) {
	body, err := c.insert(ctx, CollectionTransactions, p)
	if err != nil {
		return nil, err
	}

	var row model.Transaction
	if err := json.Unmarshal(body, &row); err != nil {
		return nil, errors.Wrap(err, "unmarshal inserted transaction")
	}
	return &row, nil
}

// UpdateClientDebt persists the recomputed running debt of one client.
func (c *Client) UpdateClientDebt(ctx context.Context, id int64, newDebt int64) error {
	patch := map[string]int64{"current_debt": newDebt}
	reqBody, err := json.Marshal(patch)
	if err != nil {
		return errors.Wrap(err, "marshal debt patch")
	}

	path := fmt.Sprintf("/rest/v1/%s/%d", CollectionClients, id)
	_, err = c.doRequest(ctx, fasthttp.MethodPatch, path, CollectionClients, "update", reqBody)
	return err
}

// DeleteClient removes one client row. The store cascades the delete to
// the client's transactions.
func (c *Client) DeleteClient(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/rest/v1/%s/%d", CollectionClients, id)
	_, err := c.doRequest(ctx, fasthttp.MethodDelete, path, CollectionClients, "delete", nil)
	return err
}

func (c *Client) list(ctx context.Context, collection string) ([]byte, error) {
	path := fmt.Sprintf("/rest/v1/%s?order=created_at.desc", collection)
	return c.doRequest(ctx, fasthttp.MethodGet, path, collection, "list", nil)
}

func (c *Client) insert(ctx context.Context, collection string, row any) ([]byte, error) {
	reqBody, err := json.Marshal(row)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal %s row", collection)
	}
	path := fmt.Sprintf("/rest/v1/%s", collection)
	return c.doRequest(ctx, fasthttp.MethodPost, path, collection, "insert", reqBody)
}

// doRequest performs one HTTP request against the store with a deadline
// taken from the context, falling back to the configured timeout.
func (c *Client) doRequest(ctx context.Context, method, path, collection, operation string, body []byte) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.config.BaseURL + path)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")
	req.Header.Set("apikey", c.config.APIKey)
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("X-Request-Id", uuid.New().String())
	req.Header.Set("Prefer", "return=representation")

	if body != nil {
		req.SetBody(body)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.config.Timeout)
	}

	start := time.Now()
	err := c.http.DoDeadline(req, resp, deadline)
	latency := time.Since(start)

	if err != nil {
		prom.ObserveStoreOperation(collection, operation, "error", latency.Seconds())
		return nil, errors.Wrapf(err, "store %s %s failed", operation, collection)
	}

	statusCode := resp.StatusCode()
	if statusCode != fasthttp.StatusOK && statusCode != fasthttp.StatusCreated && statusCode != fasthttp.StatusNoContent {
		prom.ObserveStoreOperation(collection, operation, "error", latency.Seconds())
		return nil, errors.Wrapf(ErrUnexpectedStatus, "store %s %s: status %d, body: %s", operation, collection, statusCode, resp.Body())
	}

	prom.ObserveStoreOperation(collection, operation, "ok", latency.Seconds())

	result := make([]byte, len(resp.Body()))
	copy(result, resp.Body())

	return result, nil
}
