package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/saldoapp/saldo-service/internal/config"
	"github.com/saldoapp/saldo-service/internal/models"
	"github.com/saldoapp/saldo-service/internal/repository"
)

// Store is the persistence surface the service depends on. It is satisfied
// by *repository.Repository.
type Store interface {
	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id int64) (*models.User, error)
	ListUsers() ([]models.User, error)

	ListTransactions(userID int64) ([]models.Transaction, error)
	CreateTransaction(userID int64, tx *models.Transaction) error
	UpdateTransaction(userID int64, tx *models.Transaction) error
	DeleteTransaction(userID int64, id string) error

	ListRecurring(userID int64, kind string) ([]models.RecurringItem, error)
	CreateRecurring(userID int64, kind string, item *models.RecurringItem) error
	UpdateRecurring(userID int64, kind string, item *models.RecurringItem) error
	DeleteRecurring(userID int64, kind string, id string) error

	GetSettings(userID int64) (*models.Settings, error)
	SaveSettings(userID int64, s *models.Settings) error
}

var _ Store = (*repository.Repository)(nil)

// Service handles business logic
type Service struct {
	store  Store
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service
func NewService(store Store, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{store: store, log: log, config: cfg}
}

// Register creates a new user with hashed password
func (s *Service) Register(username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.store.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// userIDFromContext extracts the authenticated user ID placed in the
// context by the auth middleware.
func userIDFromContext(ctx context.Context) (int64, error) {
	userIDStr, ok := ctx.Value("userID").(string)
	if !ok || userIDStr == "" {
		return 0, fmt.Errorf("user ID not found in context")
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID: %w", err)
	}
	return userID, nil
}

// ListTransactions returns the authenticated user's transactions, newest
// first.
func (s *Service) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListTransactions(userID)
}

// CreateTransaction records a new transaction for the authenticated user.
// A missing ID is filled in with a fresh UUID.
func (s *Service) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if err := s.store.CreateTransaction(userID, tx); err != nil {
		return err
	}
	s.log.Infof("Transaction created for user %d: %s %s", userID, tx.Description, tx.Amount)
	return nil
}

// UpdateTransaction updates a transaction owned by the authenticated user
func (s *Service) UpdateTransaction(ctx context.Context, tx *models.Transaction) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.store.UpdateTransaction(userID, tx)
}

// DeleteTransaction removes a transaction owned by the authenticated user
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.store.DeleteTransaction(userID, id)
}

func validKind(kind string) error {
	if kind != "income" && kind != "expense" {
		return fmt.Errorf("invalid recurring kind %q", kind)
	}
	return nil
}

// ListRecurring returns the authenticated user's recurring items of one
// kind ("income" or "expense").
func (s *Service) ListRecurring(ctx context.Context, kind string) ([]models.RecurringItem, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := validKind(kind); err != nil {
		return nil, err
	}
	return s.store.ListRecurring(userID, kind)
}

// CreateRecurring records a new recurring item for the authenticated user.
func (s *Service) CreateRecurring(ctx context.Context, kind string, item *models.RecurringItem) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := validKind(kind); err != nil {
		return err
	}
	if item.Day < 1 || item.Day > 31 {
		return fmt.Errorf("day of month must be between 1 and 31, got %d", item.Day)
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if err := s.store.CreateRecurring(userID, kind, item); err != nil {
		return err
	}
	s.log.Infof("Recurring %s created for user %d: %s", kind, userID, item.Name)
	return nil
}

// UpdateRecurring updates a recurring item owned by the authenticated user
func (s *Service) UpdateRecurring(ctx context.Context, kind string, item *models.RecurringItem) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := validKind(kind); err != nil {
		return err
	}
	if item.Day < 1 || item.Day > 31 {
		return fmt.Errorf("day of month must be between 1 and 31, got %d", item.Day)
	}
	return s.store.UpdateRecurring(userID, kind, item)
}

// DeleteRecurring removes a recurring item owned by the authenticated user
func (s *Service) DeleteRecurring(ctx context.Context, kind string, id string) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := validKind(kind); err != nil {
		return err
	}
	return s.store.DeleteRecurring(userID, kind, id)
}

// Settings returns the authenticated user's projection settings, falling
// back to configured defaults when none were saved yet.
func (s *Service) Settings(ctx context.Context) (*models.Settings, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.settingsFor(userID)
}

// UpdateSettings saves the authenticated user's projection settings.
func (s *Service) UpdateSettings(ctx context.Context, settings *models.Settings) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if settings.TrackingStart.IsZero() {
		settings.TrackingStart = s.config.TrackingStart
	}
	if err := s.store.SaveSettings(userID, settings); err != nil {
		return err
	}
	s.log.Infof("Settings saved for user %d", userID)
	return nil
}

// Backup exports everything the user owns in one payload.
func (s *Service) Backup(ctx context.Context) (*models.Backup, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := s.loadSnapshot(userID)
	if err != nil {
		return nil, err
	}
	return &models.Backup{
		Transactions: snap.transactions,
		Incomes:      snap.incomes,
		Expenses:     snap.expenses,
		Settings:     snap.settings,
	}, nil
}
