package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"food-platform/user-svc/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrAddressNotFound    = errors.New("address not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNegativeBalance    = errors.New("wallet balance must not be negative")
)

const minPasswordLength = 6

type UserService struct {
	users     UserRepository
	addresses AddressRepository
	tokens    *TokenIssuer
	logger    *zap.Logger
}

func NewUserService(users UserRepository, addresses AddressRepository, tokens *TokenIssuer, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{users: users, addresses: addresses, tokens: tokens, logger: logger}
}

func (s *UserService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: email", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password too short", ErrInvalidInput)
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrEmailExists
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hashed),
		Role:         domain.RoleCustomer,
		Wallet:       decimal.Zero,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.logger.Info("user registered", zap.Int("user_id", user.ID))
	return user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, user, nil
}

func (s *UserService) Get(ctx context.Context, id int) (*domain.User, error) {
	user, err := s.users.GetUser(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// SetWallet overwrites the balance. Callers compute the new value.
func (s *UserService) SetWallet(ctx context.Context, id int, balance decimal.Decimal) error {
	if balance.IsNegative() {
		return ErrNegativeBalance
	}
	n, err := s.users.UpdateWallet(ctx, id, balance)
	if err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	s.logger.Info("wallet updated", zap.Int("user_id", id), zap.String("balance", balance.String()))
	return nil
}

func (s *UserService) ListAddresses(ctx context.Context, userID int) ([]domain.Address, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}
	addresses, err := s.addresses.ListAddresses(ctx, userID)
	if err != nil {
		return nil, err
	}
	if addresses == nil {
		addresses = []domain.Address{}
	}
	return addresses, nil
}

func (s *UserService) AddAddress(ctx context.Context, address *domain.Address) error {
	if strings.TrimSpace(address.Line) == "" {
		return fmt.Errorf("%w: address line is required", ErrInvalidInput)
	}
	if _, err := s.Get(ctx, address.UserID); err != nil {
		return err
	}
	return s.addresses.CreateAddress(ctx, address)
}

func (s *UserService) RemoveAddress(ctx context.Context, userID, addressID int) error {
	n, err := s.addresses.DeleteAddress(ctx, userID, addressID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAddressNotFound
	}
	return nil
}
