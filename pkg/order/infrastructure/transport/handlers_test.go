package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/common/auth"
	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/common/envelope"
	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/order/domain/model"
	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/order/domain/service"
)

var testTokens = auth.NewTokenManager("test-secret", time.Hour)

func doRequest(t *testing.T, svc service.OrderService, method, target, body, token string) (*httptest.ResponseRecorder, envelope.Response) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	Router(svc, testTokens).ServeHTTP(rec, req)

	var resp envelope.Response
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func userToken(t *testing.T, email string) string {
	t.Helper()
	token, err := testTokens.Issue(email, "USER", "Test User")
	require.NoError(t, err)
	return token
}

func TestMissingTokenRejected(t *testing.T) {
	rec, resp := doRequest(t, &stubOrderService{}, http.MethodGet, "/api/v1/orders", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Authentication failed", resp.Message)
}

func TestInvalidTokenRejected(t *testing.T) {
	rec, resp := doRequest(t, &stubOrderService{}, http.MethodGet, "/api/v1/orders", "", "not-a-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, resp.Success)
}

func TestCreateOrderSuccessEnvelope(t *testing.T) {
	bookID := uuid.New()
	svc := &stubOrderService{
		createFn: func(userEmail string, lines []service.OrderLine, token string) (*model.Order, error) {
			assert.Equal(t, "alice@example.com", userEmail)
			require.Len(t, lines, 1)
			assert.Equal(t, bookID, lines[0].BookID)
			assert.Equal(t, 2, lines[0].Quantity)
			assert.NotEmpty(t, token)
			return &model.Order{
				ID:        uuid.New(),
				UserEmail: userEmail,
				Status:    model.Pending,
				Items:     []model.Item{{BookID: bookID, Quantity: 2}},
			}, nil
		},
	}

	body := `{"items":[{"bookId":"` + bookID.String() + `","quantity":2}]}`
	rec, resp := doRequest(t, svc, http.MethodPost, "/api/v1/orders", body, userToken(t, "alice@example.com"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "Order created successfully", resp.Message)
	require.NotNil(t, resp.Data)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "PENDING", data["status"])
	assert.Equal(t, "alice@example.com", data["userEmail"])
}

func TestCreateOrderValidationFailureEnvelope(t *testing.T) {
	svc := &stubOrderService{
		createFn: func(string, []service.OrderLine, string) (*model.Order, error) {
			return nil, &service.ValidationError{Reasons: []string{"Not enough stock for book id X"}}
		},
	}

	body := `{"items":[{"bookId":"` + uuid.NewString() + `","quantity":1}]}`
	rec, resp := doRequest(t, svc, http.MethodPost, "/api/v1/orders", body, userToken(t, "alice@example.com"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Validation failed", resp.Message)
	assert.Equal(t, []string{"Not enough stock for book id X"}, resp.Errors)
}

func TestCreateOrderReservationFailureEnvelope(t *testing.T) {
	svc := &stubOrderService{
		createFn: func(string, []service.OrderLine, string) (*model.Order, error) {
			return nil, &service.ReservationError{Reasons: []string{"Failed to reserve stock for book id X"}}
		},
	}

	body := `{"items":[{"bookId":"` + uuid.NewString() + `","quantity":1}]}`
	rec, resp := doRequest(t, svc, http.MethodPost, "/api/v1/orders", body, userToken(t, "alice@example.com"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Failed to reserve stock", resp.Message)
}

func TestCreateOrderEmptyItemsRejected(t *testing.T) {
	rec, resp := doRequest(t, &stubOrderService{}, http.MethodPost, "/api/v1/orders", `{"items":[]}`, userToken(t, "alice@example.com"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"items: must not be empty"}, resp.Errors)
}

func TestPayOrderOwnershipViolationEnvelope(t *testing.T) {
	svc := &stubOrderService{
		payFn: func(uuid.UUID, string) (*model.Order, error) {
			return nil, model.ErrNotOrderOwner
		},
	}

	rec, resp := doRequest(t, svc, http.MethodPost, "/api/v1/orders/"+uuid.NewString()+"/pay", "", userToken(t, "mallory@example.com"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid credentials", resp.Message)
	assert.Equal(t, []string{"User email does not match order owner"}, resp.Errors)
}

func TestCancelPaidOrderEnvelope(t *testing.T) {
	svc := &stubOrderService{
		cancelFn: func(uuid.UUID, string, string) (*model.Order, error) {
			return nil, model.ErrCannotCancelPaid
		},
	}

	rec, resp := doRequest(t, svc, http.MethodPost, "/api/v1/orders/"+uuid.NewString()+"/cancel", "", userToken(t, "alice@example.com"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Failed cancel order", resp.Message)
	assert.Equal(t, []string{"Cannot cancel a paid order"}, resp.Errors)
}

func TestGetOrderAccessDeniedEnvelope(t *testing.T) {
	svc := &stubOrderService{
		getFn: func(uuid.UUID, string, bool) (*model.Order, error) {
			return nil, model.ErrAccessDenied
		},
	}

	rec, resp := doRequest(t, svc, http.MethodGet, "/api/v1/orders/"+uuid.NewString(), "", userToken(t, "mallory@example.com"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid credentials", resp.Message)
	assert.Equal(t, []string{"Access denied"}, resp.Errors)
}

func TestGetOrderNotFoundEnvelope(t *testing.T) {
	svc := &stubOrderService{
		getFn: func(uuid.UUID, string, bool) (*model.Order, error) {
			return nil, model.ErrOrderNotFound
		},
	}

	rec, resp := doRequest(t, svc, http.MethodGet, "/api/v1/orders/"+uuid.NewString(), "", userToken(t, "alice@example.com"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, []string{"ORDER_NOT_FOUND"}, resp.Errors)
}

var _ service.OrderService = &stubOrderService{}

type stubOrderService struct {
	createFn func(string, []service.OrderLine, string) (*model.Order, error)
	payFn    func(uuid.UUID, string) (*model.Order, error)
	cancelFn func(uuid.UUID, string, string) (*model.Order, error)
	getFn    func(uuid.UUID, string, bool) (*model.Order, error)
	listFn   func(string, bool) ([]*model.Order, error)
}

func (s *stubOrderService) CreateOrder(userEmail string, lines []service.OrderLine, token string) (*model.Order, error) {
	return s.createFn(userEmail, lines, token)
}

func (s *stubOrderService) PayOrder(orderID uuid.UUID, payerEmail string) (*model.Order, error) {
	return s.payFn(orderID, payerEmail)
}

func (s *stubOrderService) CancelOrder(orderID uuid.UUID, cancelledByEmail, token string) (*model.Order, error) {
	return s.cancelFn(orderID, cancelledByEmail, token)
}

func (s *stubOrderService) GetOrder(orderID uuid.UUID, requesterEmail string, isAdmin bool) (*model.Order, error) {
	return s.getFn(orderID, requesterEmail, isAdmin)
}

func (s *stubOrderService) ListOrders(requesterEmail string, isAdmin bool) ([]*model.Order, error) {
	if s.listFn != nil {
		return s.listFn(requesterEmail, isAdmin)
	}
	return nil, nil
}
