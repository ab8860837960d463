package checkout

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ashishpimple94/boultindia-api/models"
)

// GormOrders persists orders through gorm.
type GormOrders struct {
	db *gorm.DB
}

func NewGormOrders(db *gorm.DB) *GormOrders {
	return &GormOrders{db: db}
}

func (r *GormOrders) Save(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormOrders) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// GormReceipts stores verified payment receipts.
type GormReceipts struct {
	db *gorm.DB
}

func NewGormReceipts(db *gorm.DB) *GormReceipts {
	return &GormReceipts{db: db}
}

func (r *GormReceipts) Record(ctx context.Context, receipt models.PaymentReceipt) error {
	return r.db.WithContext(ctx).Create(&receipt).Error
}

func (r *GormReceipts) FindByPaymentID(ctx context.Context, paymentID string) (*models.PaymentReceipt, error) {
	var receipt models.PaymentReceipt
	err := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&receipt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *GormReceipts) AttachOrder(ctx context.Context, paymentID, orderID string) error {
	return r.db.WithContext(ctx).Model(&models.PaymentReceipt{}).
		Where("payment_id = ?", paymentID).
		Update("storefront_order", orderID).Error
}
