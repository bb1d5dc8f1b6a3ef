package wallet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockWalletService struct{ mock.Mock }

func (m *MockWalletService) GetOrCreate(ctx context.Context, ownerID int) (*Wallet, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Wallet), args.Error(1)
}

func (m *MockWalletService) Debit(ctx context.Context, ownerID int, amountCents int64, kind, description string) (*Wallet, error) {
	args := m.Called(ctx, ownerID, amountCents, kind, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Wallet), args.Error(1)
}

func (m *MockWalletService) Credit(ctx context.Context, ownerID int, amountCents int64, kind, description string) (*Wallet, error) {
	args := m.Called(ctx, ownerID, amountCents, kind, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Wallet), args.Error(1)
}

func (m *MockWalletService) TopUp(ctx context.Context, ownerID int, reference string) (*Wallet, error) {
	args := m.Called(ctx, ownerID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Wallet), args.Error(1)
}

func (m *MockWalletService) Transactions(ctx context.Context, ownerID int, limit, offset int) ([]Transaction, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Transaction), args.Error(1)
}

func newWithdrawRouter(service Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/admin/wallets/:ownerID/withdraw", NewHandler(service).AdminWithdraw)
	return router
}

func postJSON(router *gin.Engine, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminWithdraw_Success(t *testing.T) {
	service := new(MockWalletService)
	router := newWithdrawRouter(service)

	service.On("Debit", mock.Anything, 5, int64(2500), KindAdminWithdrawal, "chargeback").
		Return(&Wallet{OwnerID: 5, BalanceCents: 500}, nil)

	w := postJSON(router, "/admin/wallets/5/withdraw", `{"amount_cents":2500,"reason":"chargeback"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestAdminWithdraw_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero amount", `{"amount_cents":0,"reason":"chargeback"}`},
		{"negative amount", `{"amount_cents":-100,"reason":"chargeback"}`},
		{"missing reason", `{"amount_cents":2500}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockWalletService)
			router := newWithdrawRouter(service)

			w := postJSON(router, "/admin/wallets/5/withdraw", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "validation failed")
			service.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAdminWithdraw_InsufficientBalance(t *testing.T) {
	service := new(MockWalletService)
	router := newWithdrawRouter(service)

	service.On("Debit", mock.Anything, 5, int64(2500), KindAdminWithdrawal, "chargeback").
		Return(nil, ErrInsufficientBalance)

	w := postJSON(router, "/admin/wallets/5/withdraw", `{"amount_cents":2500,"reason":"chargeback"}`)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}
