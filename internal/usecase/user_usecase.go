package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/infrastructure/metrics"
)

// UserUseCase handles registration and credential verification.
type UserUseCase struct {
	txManager       TxManager
	retrier         Retrier
	userRepo        UserRepository
	accountRepo     AccountRepository
	idGen           IDGenerator
	numberGen       AccountNumberGenerator
	startingBalance decimal.Decimal
	metrics         *metrics.Metrics
}

// NewUserUseCase creates a new UserUseCase. startingBalance seeds the
// default Savings account created at registration. retrier may be nil.
func NewUserUseCase(
	txManager TxManager,
	retrier Retrier,
	userRepo UserRepository,
	accountRepo AccountRepository,
	idGen IDGenerator,
	numberGen AccountNumberGenerator,
	startingBalance decimal.Decimal,
	metrics *metrics.Metrics,
) *UserUseCase {
	return &UserUseCase{
		txManager:       txManager,
		retrier:         retrier,
		userRepo:        userRepo,
		accountRepo:     accountRepo,
		idGen:           idGen,
		numberGen:       numberGen,
		startingBalance: startingBalance,
		metrics:         metrics,
	}
}

// RegisterInput represents a registration request.
type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string
}

// RegisterResult carries the created user and their default account.
type RegisterResult struct {
	User    *domain.User
	Account *domain.Account
}

// Register creates a user and a default Savings account in one commit.
// Username and email are stored in canonical form, so " Alice " and
// "alice" are one identity and logins always find the registered user.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := domain.ValidateUsername(input.Username); err != nil {
		return nil, err
	}

	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	exists, err := uc.userRepo.ExistsByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateRegistration
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:             uc.idGen.Generate(),
		Username:       input.Username,
		Email:          input.Email,
		FullName:       input.FullName,
		HashedPassword: hashed,
		Active:         true,
		CreatedAt:      time.Now().UTC(),
	}

	// The availability check in freshAccountNumber races with concurrent
	// registrations. When the insert itself hits the unique index, the
	// whole transaction is rolled back and re-run with a fresh number.
	var account *domain.Account
	for attempt := 0; ; attempt++ {
		number, err := uc.freshAccountNumber(ctx)
		if err != nil {
			return nil, err
		}

		account, err = uc.createUserWithAccount(ctx, user, number)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrAccountNumberTaken) && attempt+1 < AccountNumberAttempts {
			continue
		}

		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.RegistrationsTotal.Inc()
	}

	user.HashedPassword = ""

	return &RegisterResult{User: user, Account: account}, nil
}

// createUserWithAccount commits the user row and their seeded Savings
// account together.
func (uc *UserUseCase) createUserWithAccount(ctx context.Context, user *domain.User, number string) (*domain.Account, error) {
	var account *domain.Account

	err := runInTx(ctx, uc.txManager, uc.retrier, func(txCtx context.Context, tx Tx) error {
		if err := uc.userRepo.Create(txCtx, tx, user); err != nil {
			return err
		}

		account = &domain.Account{
			ID:            uc.idGen.Generate(),
			UserID:        user.ID,
			AccountNumber: number,
			AccountType:   domain.AccountTypeSavings,
			Balance:       uc.startingBalance,
			Currency:      domain.DefaultCurrency,
			CreatedAt:     user.CreatedAt,
			UpdatedAt:     user.CreatedAt,
		}

		return uc.accountRepo.Create(txCtx, tx, account)
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// AuthenticateInput represents a login request.
type AuthenticateInput struct {
	Username string
	Password string
}

// Authenticate verifies user credentials. Wrong username and wrong password
// are indistinguishable to the caller.
func (uc *UserUseCase) Authenticate(ctx context.Context, input AuthenticateInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)

	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.AuthFailures.Inc()
		}
		return nil, domain.ErrInvalidCredentials
	}

	if err := verifyPassword(user.HashedPassword, input.Password); err != nil {
		if uc.metrics != nil {
			uc.metrics.AuthFailures.Inc()
		}
		return nil, domain.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, domain.ErrUserInactive
	}

	user.HashedPassword = ""

	return user, nil
}

// GetUser retrieves a user by ID.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.HashedPassword = ""

	return user, nil
}

// freshAccountNumber generates an account number, regenerating on collision.
func (uc *UserUseCase) freshAccountNumber(ctx context.Context) (string, error) {
	for i := 0; i < AccountNumberAttempts; i++ {
		number := uc.numberGen.Generate()

		_, err := uc.accountRepo.GetByNumber(ctx, number)
		if err == nil {
			continue // taken
		}
		if !errors.Is(err, domain.ErrAccountNotFound) {
			return "", err
		}

		return number, nil
	}

	return "", fmt.Errorf("could not allocate a unique account number after %d attempts", AccountNumberAttempts)
}

// hashPassword hashes a password using bcrypt.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword verifies a password against a bcrypt hash in constant time.
func verifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
