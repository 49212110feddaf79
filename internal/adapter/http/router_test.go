package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/adapter/http/handler"
	apimiddleware "github.com/iho/gobank/internal/adapter/http/middleware"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/infrastructure/auth"
	"github.com/iho/gobank/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_ProtectedRoutesRequireToken(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	jwtManager := auth.NewJWTManager("test-secret", time.Minute)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
		cfg.JWTManager = jwtManager
	}))

	token, err := jwtManager.Generate(&domain.User{ID: "user-1", Username: "alice"})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	body := `{"account_id":"acc-1","amount":"100"}`
	req := httptest.NewRequest(http.MethodPost, "/api/transactions/deposit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/auth/register",
		"POST /api/auth/login",
		"GET /api/accounts/",
		"GET /api/accounts/{id}",
		"POST /api/transactions/deposit",
		"POST /api/transactions/withdraw",
		"POST /api/transactions/transfer",
		"POST /api/transactions/{id}/approve",
		"GET /api/investments/digital-gold/",
		"POST /api/investments/digital-gold/buy",
		"GET /api/dashboard",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	jwtManager := auth.NewJWTManager("test-secret", time.Minute)

	cfg := RouterConfig{
		AuthHandler:        handler.NewAuthHandler(&stubUserService{}, jwtManager),
		AccountHandler:     handler.NewAccountHandler(&stubAccountService{}),
		TransactionHandler: handler.NewTransactionHandler(&stubLedgerService{}),
		GoldHandler:        handler.NewGoldHandler(&stubGoldService{}),
		DashboardHandler:   handler.NewDashboardHandler(&stubDashboardService{}),
		HealthHandler:      &handler.HealthHandler{},
		JWTManager:         jwtManager,
		Logger:             zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubUserService struct{}

func (stubUserService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterResult, error) {
	return &usecase.RegisterResult{
		User:    &domain.User{ID: "user-1", Username: input.Username},
		Account: &domain.Account{ID: "acc-1"},
	}, nil
}

func (stubUserService) Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
	return &domain.User{ID: "user-1", Username: input.Username}, nil
}

type stubAccountService struct{}

func (stubAccountService) ListAccounts(ctx context.Context, userID string) ([]*domain.Account, error) {
	return []*domain.Account{}, nil
}

func (stubAccountService) GetAccount(ctx context.Context, accountID, userID string) (*domain.Account, error) {
	return &domain.Account{ID: accountID, UserID: userID}, nil
}

type stubLedgerService struct{}

func (stubLedgerService) Deposit(ctx context.Context, input usecase.DepositInput) (*usecase.MutationResult, error) {
	return &usecase.MutationResult{Transaction: &domain.Transaction{ID: "txn-1"}}, nil
}

func (stubLedgerService) Withdraw(ctx context.Context, input usecase.WithdrawInput) (*usecase.MutationResult, error) {
	return &usecase.MutationResult{Transaction: &domain.Transaction{ID: "txn-2"}}, nil
}

func (stubLedgerService) Transfer(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error) {
	return &usecase.TransferResult{
		OutTransaction: &domain.Transaction{ID: "txn-3"},
		InTransaction:  &domain.Transaction{ID: "txn-4"},
	}, nil
}

func (stubLedgerService) ApproveTransaction(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	return &domain.Transaction{ID: transactionID}, nil
}

type stubGoldService struct{}

func (stubGoldService) Buy(ctx context.Context, userID string, amount decimal.Decimal) (*usecase.BuyGoldResult, error) {
	return &usecase.BuyGoldResult{TransactionID: "txn-5", Status: usecase.PendingApprovalStatus}, nil
}

func (stubGoldService) GetHoldings(ctx context.Context, userID string) (*domain.GoldHolding, error) {
	return &domain.GoldHolding{UserID: userID}, nil
}

type stubDashboardService struct{}

func (stubDashboardService) Get(ctx context.Context, userID string) (*usecase.Dashboard, error) {
	return &usecase.Dashboard{User: &domain.User{ID: userID}}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
