package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/order/domain/service"
)

// Client implements service.CatalogClient against the catalog service REST
// API. Failures come back as error values; the remote service's own timeout
// policy is the http.Client timeout.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

var _ service.CatalogClient = &Client{}

type bookPayload struct {
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

type bookEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    *bookPayload `json:"data"`
}

func (c *Client) GetBook(bookID uuid.UUID, token string) (*service.BookSnapshot, error) {
	url := fmt.Sprintf("%s/books/%s", c.baseURL, bookID)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "build request for book %s", bookID)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch book %s", bookID)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, service.ErrBookNotFound
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.Errorf("fetch book %s: unexpected status %d", bookID, resp.StatusCode)
	}

	var env bookEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, errors.Wrapf(err, "decode book %s", bookID)
	}
	if env.Data == nil {
		return nil, service.ErrBookNotFound
	}

	return &service.BookSnapshot{Price: env.Data.Price, Stock: env.Data.Stock}, nil
}

func (c *Client) DecrementStock(bookID uuid.UUID, quantity int, token string) error {
	return c.postStock(bookID, "decrement", quantity, token)
}

func (c *Client) IncrementStock(bookID uuid.UUID, quantity int, token string) error {
	return c.postStock(bookID, "increment", quantity, token)
}

func (c *Client) postStock(bookID uuid.UUID, op string, quantity int, token string) error {
	url := fmt.Sprintf("%s/books/%s/%s?qty=%d", c.baseURL, bookID, op, quantity)
	req, err := http.NewRequest(http.MethodPost, url, nil)
	if err != nil {
		return errors.Wrapf(err, "build %s request for book %s", op, bookID)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s stock for book %s", op, bookID)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("%s stock for book %s: unexpected status %d", op, bookID, resp.StatusCode)
	}
	return nil
}
