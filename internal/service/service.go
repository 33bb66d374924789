package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dan9191/salon-ops/internal/calc"
	"github.com/Dan9191/salon-ops/internal/config"
	"github.com/Dan9191/salon-ops/internal/models"
	"github.com/Dan9191/salon-ops/internal/repository"
)

// ErrInvalidCredentials is returned for a wrong username, password or token.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Store is the record store the service reads and writes.
type Store interface {
	GetFixedCosts(ctx context.Context) (*models.FixedCosts, error)
	SaveFixedCosts(ctx context.Context, costs *models.FixedCosts) error

	ListCategories(ctx context.Context) ([]models.CostCategory, error)
	GetCategory(ctx context.Context, id int64) (*models.CostCategory, error)
	CreateCategory(ctx context.Context, c *models.CostCategory) error
	UpdateCategory(ctx context.Context, c *models.CostCategory) error
	DeleteCategory(ctx context.Context, id int64) error

	ListCostItems(ctx context.Context, filter repository.ItemFilter) ([]models.CostItem, error)
	GetCostItem(ctx context.Context, id int64) (*models.CostItem, error)
	CreateCostItem(ctx context.Context, item *models.CostItem) error
	UpdateCostItem(ctx context.Context, item *models.CostItem) error
	DeleteCostItem(ctx context.Context, id int64) error
}

// Service handles business logic
type Service struct {
	store        Store
	log          *logrus.Logger
	config       *config.Config
	passwordHash []byte
	now          func() time.Time

	// compare is bcrypt.CompareHashAndPassword outside tests.
	compare func(hash, password []byte) error

	// verified is the digest of the last credentials bcrypt accepted.
	mu       sync.RWMutex
	verified []byte
}

// NewService initializes a new service. The admin password from the
// configuration is hashed once here and never kept in clear.
func NewService(store Store, log *logrus.Logger, cfg *config.Config) (*Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return &Service{
		store:        store,
		log:          log,
		config:       cfg,
		passwordHash: hash,
		now:          time.Now,
		compare:      bcrypt.CompareHashAndPassword,
	}, nil
}

// Authenticate checks credentials against the configured administrator.
func (s *Service) Authenticate(creds models.Credentials) error {
	if creds.Username != s.config.AdminUsername {
		return ErrInvalidCredentials
	}
	digest := credentialDigest(creds)
	s.mu.RLock()
	cached := s.verified != nil && subtle.ConstantTimeCompare(s.verified, digest) == 1
	s.mu.RUnlock()
	if cached {
		return nil
	}

	if err := s.compare(s.passwordHash, []byte(creds.Password)); err != nil {
		return ErrInvalidCredentials
	}
	s.mu.Lock()
	s.verified = digest
	s.mu.Unlock()
	return nil
}

func credentialDigest(creds models.Credentials) []byte {
	sum := blake2b.Sum256([]byte(creds.Username + "\x00" + creds.Password))
	return sum[:]
}

// Login authenticates the credentials and returns a signed JWT
func (s *Service) Login(creds models.Credentials) (*models.Token, error) {
	if err := s.Authenticate(creds); err != nil {
		s.log.Warnf("Failed login for user %q", creds.Username)
		return nil, err
	}

	now := s.now()
	expiresAt := now.Add(s.config.TokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   creds.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", creds.Username)
	return &models.Token{Token: signed, ExpiresAt: expiresAt.UTC().Format(time.RFC3339)}, nil
}

// ValidateToken verifies a bearer token and returns the username it was issued to.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if claims.Subject != s.config.AdminUsername {
		return "", ErrInvalidCredentials
	}
	return claims.Subject, nil
}

// GetFixedCosts returns the stored fixed costs, or an all-zero record when
// none were saved yet.
func (s *Service) GetFixedCosts(ctx context.Context) (*models.FixedCosts, error) {
	costs, err := s.store.GetFixedCosts(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return &models.FixedCosts{}, nil
	}
	if err != nil {
		s.log.Errorf("Failed to load fixed costs: %v", err)
		return nil, err
	}
	return costs, nil
}

// UpdateFixedCosts validates and stores the fixed-cost record
func (s *Service) UpdateFixedCosts(ctx context.Context, costs *models.FixedCosts) (*models.FixedCosts, error) {
	if err := calc.ValidateFixedCosts(*costs); err != nil {
		s.log.Warnf("Rejected fixed costs: %v", err)
		return nil, err
	}
	if err := s.store.SaveFixedCosts(ctx, costs); err != nil {
		s.log.Errorf("Failed to save fixed costs: %v", err)
		return nil, err
	}
	s.log.Infof("Fixed costs updated: total %s", costs.Total().StringFixed(2))
	return costs, nil
}

// FixedCostsTotal returns the monthly total of the stored fixed costs
func (s *Service) FixedCostsTotal(ctx context.Context) (decimal.Decimal, error) {
	costs, err := s.GetFixedCosts(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return calc.TotalFixedCosts(*costs)
}

// Forecast runs the forecast against the stored fixed costs
func (s *Service) Forecast(ctx context.Context, inputs models.OperationalInputs) (*models.FinancialSnapshot, error) {
	costs, err := s.GetFixedCosts(ctx)
	if err != nil {
		return nil, err
	}
	snapshot, err := calc.ComputeForecast(inputs, *costs)
	if err != nil {
		s.log.Warnf("Rejected forecast inputs: %v", err)
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"mode":       snapshot.Mode,
		"net_profit": snapshot.NetProfit.StringFixed(2),
	}).Debug("Forecast computed")
	return snapshot, nil
}

func validateCategory(c *models.CostCategory) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return &calc.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return calc.CheckAmount("projected_total", c.ProjectedTotal.Decimal)
}

// ListCategories returns all categories ordered by sort_order
func (s *Service) ListCategories(ctx context.Context) ([]models.CostCategory, error) {
	return s.store.ListCategories(ctx)
}

// CreateCategory validates and stores a new category
func (s *Service) CreateCategory(ctx context.Context, c *models.CostCategory) (*models.CostCategory, error) {
	if err := validateCategory(c); err != nil {
		return nil, err
	}
	c.ID = 0
	if err := s.store.CreateCategory(ctx, c); err != nil {
		s.log.Errorf("Failed to create category: %v", err)
		return nil, err
	}
	s.log.Infof("Category created: %d (%s)", c.ID, c.Name)
	return c, nil
}

// UpdateCategory replaces the category with the given id
func (s *Service) UpdateCategory(ctx context.Context, id int64, c *models.CostCategory) (*models.CostCategory, error) {
	if err := validateCategory(c); err != nil {
		return nil, err
	}
	c.ID = id
	if err := s.store.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	s.log.Infof("Category updated: %d", id)
	return c, nil
}

// DeleteCategory removes a category and its items
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.log.Infof("Category deleted: %d", id)
	return nil
}

// prepareCostItem validates an item and fills in defaults.
func (s *Service) prepareCostItem(ctx context.Context, item *models.CostItem) error {
	if err := calc.CheckAmount("amount", item.Amount.Decimal); err != nil {
		return err
	}
	if item.Status == "" {
		item.Status = models.StatusPlanned
	}
	if !item.Status.Valid() {
		return &calc.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", item.Status)}
	}
	if item.Date.IsZero() {
		item.Date = models.NewDate(s.now())
	}
	if _, err := s.store.GetCategory(ctx, item.CategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return unknownCategory(item.CategoryID)
		}
		return err
	}
	return nil
}

func unknownCategory(id int64) error {
	return &calc.ValidationError{Field: "category_id", Reason: fmt.Sprintf("category %d does not exist", id)}
}

func (s *Service) translateStoreError(err error, categoryID int64) error {
	if errors.Is(err, repository.ErrUnknownCategory) {
		return unknownCategory(categoryID)
	}
	return err
}

// ListCostItems returns items, optionally filtered by category and status
func (s *Service) ListCostItems(ctx context.Context, filter repository.ItemFilter) ([]models.CostItem, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, &calc.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", *filter.Status)}
	}
	return s.store.ListCostItems(ctx, filter)
}

// GetCostItem returns a single cost item
func (s *Service) GetCostItem(ctx context.Context, id int64) (*models.CostItem, error) {
	return s.store.GetCostItem(ctx, id)
}

// CreateCostItem validates and stores a new cost item
func (s *Service) CreateCostItem(ctx context.Context, item *models.CostItem) (*models.CostItem, error) {
	if err := s.prepareCostItem(ctx, item); err != nil {
		return nil, err
	}
	item.ID = 0
	if err := s.store.CreateCostItem(ctx, item); err != nil {
		return nil, s.translateStoreError(err, item.CategoryID)
	}
	s.log.Infof("Cost item created: %d in category %d (%s)", item.ID, item.CategoryID, item.Amount.StringFixed(2))
	return item, nil
}

// UpdateCostItem replaces the cost item with the given id
func (s *Service) UpdateCostItem(ctx context.Context, id int64, item *models.CostItem) (*models.CostItem, error) {
	if err := s.prepareCostItem(ctx, item); err != nil {
		return nil, err
	}
	item.ID = id
	if err := s.store.UpdateCostItem(ctx, item); err != nil {
		return nil, s.translateStoreError(err, item.CategoryID)
	}
	s.log.Infof("Cost item updated: %d", id)
	return item, nil
}

// DeleteCostItem removes a cost item
func (s *Service) DeleteCostItem(ctx context.Context, id int64) error {
	if err := s.store.DeleteCostItem(ctx, id); err != nil {
		return err
	}
	s.log.Infof("Cost item deleted: %d", id)
	return nil
}

// ProjectSummary rolls every stored item up into the project budget summary
func (s *Service) ProjectSummary(ctx context.Context) (models.ProjectCostsSummary, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return models.ProjectCostsSummary{}, err
	}
	items, err := s.store.ListCostItems(ctx, repository.ItemFilter{})
	if err != nil {
		return models.ProjectCostsSummary{}, err
	}
	summary, err := calc.AggregateProjectCosts(categories, items)
	if err != nil {
		s.log.Errorf("Failed to aggregate project costs: %v", err)
		return models.ProjectCostsSummary{}, err
	}
	return summary, nil
}
