package persistence

import (
	"context"
	"errors"

	"github.com/glossary/backend/internal/domain/commerce"
	"github.com/glossary/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase by its ID
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*commerce.Purchase, error) {
	var purchase commerce.Purchase
	if err := r.db.WithContext(ctx).First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindByOrderID finds a purchase by the provider's order ID
func (r *GormPurchaseRepository) FindByOrderID(ctx context.Context, orderID string) (*commerce.Purchase, error) {
	var purchase commerce.Purchase
	if err := r.db.WithContext(ctx).First(&purchase, "gumroad_order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindByUser returns a user's purchases, newest first
func (r *GormPurchaseRepository) FindByUser(ctx context.Context, userID string) ([]commerce.Purchase, error) {
	var purchases []commerce.Purchase
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// FindRecent returns purchases page by page, newest first, optionally
// filtered by status
func (r *GormPurchaseRepository) FindRecent(ctx context.Context, status commerce.PurchaseStatus, filter shared.Filter) (shared.Paginated[commerce.Purchase], error) {
	scope := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&commerce.Purchase{})
		if status != "" {
			q = q.Where("status = ?", status)
		}
		return q
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return shared.Paginated[commerce.Purchase]{}, err
	}

	query := scope()
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, PurchaseSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var purchases []commerce.Purchase
	if err := query.Order(orderBy + " " + orderDir).Find(&purchases).Error; err != nil {
		return shared.Paginated[commerce.Purchase]{}, err
	}

	return shared.NewPaginated(purchases, total, filter.Page, filter.PageSize), nil
}

// Save creates or updates a purchase
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *commerce.Purchase) error {
	return r.db.WithContext(ctx).Save(purchase).Error
}

// Ensure GormPurchaseRepository implements PurchaseRepository
var _ commerce.PurchaseRepository = (*GormPurchaseRepository)(nil)
