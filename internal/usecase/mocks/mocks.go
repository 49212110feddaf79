// Package mocks provides hand-written in-memory fakes for the usecase
// repository interfaces. Each method can be overridden per test through the
// corresponding Func field; otherwise a map-backed default is used.
package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// MockTx is a no-op store transaction.
type MockTx struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTx) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTx) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTxManager hands out MockTx transactions.
type MockTxManager struct {
	mu        sync.Mutex
	BeginFunc func(ctx context.Context) (usecase.Tx, error)
	Started   []*MockTx
}

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Tx, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTx{}
	m.Started = append(m.Started, tx)
	return tx, nil
}

// MockIDGenerator produces deterministic sequential IDs.
type MockIDGenerator struct {
	mu           sync.Mutex
	GenerateFunc func() string
	counter      int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%d", m.counter)
}

// MockAccountNumberGenerator returns numbers from a fixed queue, falling
// back to a constant once drained.
type MockAccountNumberGenerator struct {
	mu           sync.Mutex
	GenerateFunc func() string
	Queue        []string
}

func NewMockAccountNumberGenerator(numbers ...string) *MockAccountNumberGenerator {
	return &MockAccountNumberGenerator{Queue: numbers}
}

func (m *MockAccountNumberGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Queue) == 0 {
		return "000000000000"
	}
	n := m.Queue[0]
	m.Queue = m.Queue[1:]
	return n
}

// MockUserRepository is a map-backed usecase.UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateFunc                  func(ctx context.Context, tx usecase.Tx, user *domain.User) error
	GetByIDFunc                 func(ctx context.Context, id string) (*domain.User, error)
	GetByUsernameFunc           func(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsernameOrEmailFunc func(ctx context.Context, username, email string) (bool, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, tx usecase.Tx, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	if m.ExistsByUsernameOrEmailFunc != nil {
		return m.ExistsByUsernameOrEmailFunc(ctx, username, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// MockAccountRepository is a map-backed usecase.AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc              func(ctx context.Context, tx usecase.Tx, account *domain.Account) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.Account, error)
	GetByNumberFunc         func(ctx context.Context, number string) (*domain.Account, error)
	GetByIDForUpdateFunc    func(ctx context.Context, tx usecase.Tx, id string) (*domain.Account, error)
	GetByIDsForUpdateFunc   func(ctx context.Context, tx usecase.Tx, ids []string) ([]*domain.Account, error)
	GetPrimaryForUpdateFunc func(ctx context.Context, tx usecase.Tx, userID string) (*domain.Account, error)
	ListByUserFunc          func(ctx context.Context, userID string) ([]*domain.Account, error)
	UpdateBalanceFunc       func(ctx context.Context, tx usecase.Tx, id string, balance decimal.Decimal, updatedAt time.Time) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[string]*domain.Account)}
}

// Seed stores an account directly, bypassing Create overrides.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *account
	m.accounts[account.ID] = &cp
}

// Account returns the stored state for assertions.
func (m *MockAccountRepository) Account(id string) *domain.Account {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil
	}
	cp := *a
	return &cp
}

func (m *MockAccountRepository) Create(ctx context.Context, tx usecase.Tx, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *account
	m.accounts[account.ID] = &cp
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *MockAccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.accounts {
		if a.AccountNumber == number {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Tx, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Account
	for _, id := range ids {
		if a, ok := m.accounts[id]; ok {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockAccountRepository) GetPrimaryForUpdate(ctx context.Context, tx usecase.Tx, userID string) (*domain.Account, error) {
	if m.GetPrimaryForUpdateFunc != nil {
		return m.GetPrimaryForUpdateFunc(ctx, tx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var owned []*domain.Account
	for _, a := range m.accounts {
		if a.UserID == userID {
			owned = append(owned, a)
		}
	}
	if len(owned) == 0 {
		return nil, domain.ErrAccountNotFound
	}
	sort.Slice(owned, func(i, j int) bool {
		if owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].ID < owned[j].ID
		}
		return owned[i].CreatedAt.Before(owned[j].CreatedAt)
	})
	cp := *owned[0]
	return &cp, nil
}

func (m *MockAccountRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Account, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Account
	for _, a := range m.accounts {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Tx, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Balance = balance
	a.Version++
	a.UpdatedAt = updatedAt
	return nil
}

// MockTransactionRepository is a map-backed usecase.TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction
	order        []string

	CreateFunc           func(ctx context.Context, tx usecase.Tx, txn *domain.Transaction) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Tx, id string) (*domain.Transaction, error)
	UpdateStatusFunc     func(ctx context.Context, tx usecase.Tx, id string, status domain.TransactionStatus) error
	ListRecentByUserFunc func(ctx context.Context, userID string, limit int) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{transactions: make(map[string]*domain.Transaction)}
}

// All returns every stored record in insertion order, for assertions.
func (m *MockTransactionRepository) All() []*domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Transaction, 0, len(m.order))
	for _, id := range m.order {
		cp := *m.transactions[id]
		out = append(out, &cp)
	}
	return out
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Tx, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *txn
	m.transactions[txn.ID] = &cp
	m.order = append(m.order, txn.ID)
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *MockTransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Transaction, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockTransactionRepository) UpdateStatus(ctx context.Context, tx usecase.Tx, id string, status domain.TransactionStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transactions[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	t.Status = status
	return nil
}

func (m *MockTransactionRepository) ListRecentByUser(ctx context.Context, userID string, limit int) ([]*domain.Transaction, error) {
	if m.ListRecentByUserFunc != nil {
		return m.ListRecentByUserFunc(ctx, userID, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for i := len(m.order) - 1; i >= 0 && len(out) < limit; i-- {
		t := m.transactions[m.order[i]]
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

// MockGoldRepository is a map-backed usecase.GoldRepository keyed by user.
type MockGoldRepository struct {
	mu       sync.RWMutex
	holdings map[string]*domain.GoldHolding

	CreateFunc             func(ctx context.Context, tx usecase.Tx, holding *domain.GoldHolding) error
	GetByUserFunc          func(ctx context.Context, userID string) (*domain.GoldHolding, error)
	GetByUserForUpdateFunc func(ctx context.Context, tx usecase.Tx, userID string) (*domain.GoldHolding, error)
	UpdateFunc             func(ctx context.Context, tx usecase.Tx, holding *domain.GoldHolding) error
}

func NewMockGoldRepository() *MockGoldRepository {
	return &MockGoldRepository{holdings: make(map[string]*domain.GoldHolding)}
}

func (m *MockGoldRepository) Create(ctx context.Context, tx usecase.Tx, holding *domain.GoldHolding) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, holding)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *holding
	m.holdings[holding.UserID] = &cp
	return nil
}

func (m *MockGoldRepository) GetByUser(ctx context.Context, userID string) (*domain.GoldHolding, error) {
	if m.GetByUserFunc != nil {
		return m.GetByUserFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.holdings[userID]
	if !ok {
		return nil, domain.ErrGoldHoldingNotFound
	}
	cp := *h
	return &cp, nil
}

func (m *MockGoldRepository) GetByUserForUpdate(ctx context.Context, tx usecase.Tx, userID string) (*domain.GoldHolding, error) {
	if m.GetByUserForUpdateFunc != nil {
		return m.GetByUserForUpdateFunc(ctx, tx, userID)
	}
	return m.GetByUser(ctx, userID)
}

func (m *MockGoldRepository) Update(ctx context.Context, tx usecase.Tx, holding *domain.GoldHolding) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, holding)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *holding
	m.holdings[holding.UserID] = &cp
	return nil
}
