package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/reporting/domain/service"
)

// OrderClient implements service.OrderFetcher against the order service REST
// API, forwarding the caller's bearer token.
type OrderClient struct {
	baseURL string
	client  *http.Client
}

func NewOrderClient(baseURL string, timeout time.Duration) *OrderClient {
	return &OrderClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

var _ service.OrderFetcher = &OrderClient{}

type orderItemPayload struct {
	BookID   uuid.UUID       `json:"bookId"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type orderPayload struct {
	Status     string             `json:"status"`
	TotalPrice decimal.Decimal    `json:"totalPrice"`
	Items      []orderItemPayload `json:"items"`
}

type ordersEnvelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    []orderPayload `json:"data"`
}

func (c *OrderClient) FetchOrders(token string) ([]service.Order, error) {
	var env ordersEnvelope
	if err := getJSON(c.client, c.baseURL+"/orders", token, &env); err != nil {
		return nil, errors.Wrap(err, "fetch orders")
	}

	orders := make([]service.Order, 0, len(env.Data))
	for _, payload := range env.Data {
		order := service.Order{Status: payload.Status, TotalPrice: payload.TotalPrice}
		for _, item := range payload.Items {
			order.Items = append(order.Items, service.OrderItem{
				BookID:   item.BookID,
				Quantity: item.Quantity,
				Price:    item.Price,
			})
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// CatalogClient implements service.BookFetcher against the catalog service
// REST API.
type CatalogClient struct {
	baseURL string
	client  *http.Client
}

func NewCatalogClient(baseURL string, timeout time.Duration) *CatalogClient {
	return &CatalogClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

var _ service.BookFetcher = &CatalogClient{}

type bookPayload struct {
	ID    uuid.UUID       `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

type bookPageEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Content []bookPayload `json:"content"`
	} `json:"data"`
}

type bookEnvelope struct {
	Success bool         `json:"success"`
	Data    *bookPayload `json:"data"`
}

func (c *CatalogClient) FetchBooks(token string) ([]service.Book, error) {
	var env bookPageEnvelope
	if err := getJSON(c.client, c.baseURL+"/books", token, &env); err != nil {
		return nil, errors.Wrap(err, "fetch books")
	}

	books := make([]service.Book, 0, len(env.Data.Content))
	for _, payload := range env.Data.Content {
		books = append(books, service.Book{ID: payload.ID, Title: payload.Title, Price: payload.Price})
	}
	return books, nil
}

func (c *CatalogClient) FetchBook(bookID uuid.UUID, token string) (*service.Book, error) {
	var env bookEnvelope
	url := fmt.Sprintf("%s/books/%s", c.baseURL, bookID)
	if err := getJSON(c.client, url, token, &env); err != nil {
		return nil, errors.Wrapf(err, "fetch book %s", bookID)
	}
	if env.Data == nil {
		return nil, errors.Errorf("fetch book %s: empty response", bookID)
	}
	return &service.Book{ID: env.Data.ID, Title: env.Data.Title, Price: env.Data.Price}, nil
}

func getJSON(client *http.Client, url, token string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
