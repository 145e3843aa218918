package models

import (
	"context"
	"time"

	"github.com/Alucard672/shaxian/config"
	"github.com/Alucard672/shaxian/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccountPayable mirrors AccountReceivable for the supplier side.
type AccountPayable struct {
	ID                  int             `gorm:"primary_key" json:"id"`
	SupplierId          int             `json:"supplier_id"`
	SupplierName        string          `gorm:"size:100;not null" json:"supplier_name"`
	PurchaseOrderId     *int            `gorm:"uniqueIndex" json:"purchase_order_id"`
	PurchaseOrderNumber string          `gorm:"size:50" json:"purchase_order_number"`
	PayableAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"payable_amount"`
	PaidAmount          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"paid_amount"`
	UnpaidAmount        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"unpaid_amount"`
	AccountDate         time.Time       `gorm:"type:date;not null" json:"account_date"`
	Status              AccountStatus   `gorm:"type:enum('Unsettled','Settled');not null;default:'Unsettled'" json:"status"`
	CreatedAt           time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type PaymentRecord struct {
	ID               int             `gorm:"primary_key" json:"id"`
	AccountPayableId int             `gorm:"index;not null" json:"account_payable_id"`
	Amount           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentMethod    PaymentMethod   `gorm:"type:enum('Cash','Transfer','Check','Other');not null;default:'Transfer'" json:"payment_method"`
	PaymentDate      time.Time       `gorm:"type:date;not null" json:"payment_date"`
	Operator         string          `gorm:"size:50" json:"operator"`
	Remark           string          `gorm:"size:200" json:"remark"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewAccountPayable struct {
	SupplierId          int             `json:"supplier_id"`
	SupplierName        string          `json:"supplier_name" binding:"required"`
	PurchaseOrderId     int             `json:"purchase_order_id"`
	PurchaseOrderNumber string          `json:"purchase_order_number"`
	PayableAmount       decimal.Decimal `json:"payable_amount"`
	PaidAmount          decimal.Decimal `json:"paid_amount"`
	AccountDate         time.Time       `json:"account_date" binding:"required"`
}

type NewPaymentRecord struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	PaymentDate   time.Time       `json:"payment_date" binding:"required"`
	Operator      string          `json:"operator"`
	Remark        string          `json:"remark"`
}

func newAccountPayable(input *NewAccountPayable) (*AccountPayable, error) {
	if input.PayableAmount.IsNegative() {
		return nil, utils.NewValidationError("payable amount cannot be negative")
	}
	if input.PaidAmount.IsNegative() {
		return nil, utils.NewValidationError("paid amount cannot be negative")
	}
	var purchaseOrderId *int
	if input.PurchaseOrderId != 0 {
		purchaseOrderId = &input.PurchaseOrderId
	}
	unpaid := input.PayableAmount.Sub(input.PaidAmount)
	return &AccountPayable{
		SupplierId:          input.SupplierId,
		SupplierName:        input.SupplierName,
		PurchaseOrderId:     purchaseOrderId,
		PurchaseOrderNumber: input.PurchaseOrderNumber,
		PayableAmount:       input.PayableAmount,
		PaidAmount:          input.PaidAmount,
		UnpaidAmount:        unpaid,
		AccountDate:         input.AccountDate,
		Status:              accountStatusFor(unpaid),
	}, nil
}

func CreateAccountPayable(ctx context.Context, input *NewAccountPayable) (*AccountPayable, error) {
	payable, err := newAccountPayable(input)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(payable).Error; err != nil {
		return nil, utils.TranslateDBError(err)
	}
	return payable, nil
}

func createPayableForPurchaseOrder(tx *gorm.DB, order *PurchaseOrder) error {
	payable, err := newAccountPayable(&NewAccountPayable{
		SupplierId:          order.SupplierId,
		SupplierName:        order.SupplierName,
		PurchaseOrderId:     order.ID,
		PurchaseOrderNumber: order.OrderNumber,
		PayableAmount:       order.TotalAmount,
		PaidAmount:          order.PaidAmount,
		AccountDate:         order.PurchaseDate,
	})
	if err != nil {
		return err
	}
	if err := tx.Create(payable).Error; err != nil {
		return utils.TranslateDBError(err)
	}
	return nil
}

// CreatePaymentRecord appends a payment and rolls the account and the
// originating purchase order forward in one transaction.
func CreatePaymentRecord(ctx context.Context, accountId int, input *NewPaymentRecord) (*PaymentRecord, error) {
	if !input.Amount.IsPositive() {
		return nil, utils.NewValidationError("payment amount must be positive")
	}

	operator := input.Operator
	if operator == "" {
		operator, _ = utils.GetOperatorFromContext(ctx)
	}
	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = PaymentMethodTransfer
	}

	db := config.GetDB()
	tx := db.Begin()
	var payable AccountPayable
	err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&payable, accountId).Error
	if err != nil {
		tx.Rollback()
		return nil, utils.TranslateDBError(err)
	}

	payment := PaymentRecord{
		AccountPayableId: accountId,
		Amount:           input.Amount,
		PaymentMethod:    paymentMethod,
		PaymentDate:      input.PaymentDate,
		Operator:         operator,
		Remark:           input.Remark,
	}
	if err := tx.WithContext(ctx).Create(&payment).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	paid := payable.PaidAmount.Add(input.Amount)
	unpaid := payable.PayableAmount.Sub(paid)
	err = tx.WithContext(ctx).Model(&payable).
		Updates(map[string]interface{}{
			"PaidAmount":   paid,
			"UnpaidAmount": unpaid,
			"Status":       accountStatusFor(unpaid),
		}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if payable.PurchaseOrderId != nil {
		err = tx.WithContext(ctx).Model(&PurchaseOrder{}).
			Where("id = ?", *payable.PurchaseOrderId).
			Updates(map[string]interface{}{
				"paid_amount":   gorm.Expr("paid_amount + ?", input.Amount),
				"unpaid_amount": gorm.Expr("unpaid_amount - ?", input.Amount),
			}).Error
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func GetAccountPayable(ctx context.Context, id int) (*AccountPayable, error) {
	return utils.FetchModel[AccountPayable](ctx, id)
}

func GetAccountPayables(ctx context.Context, status *AccountStatus, supplierId int) ([]*AccountPayable, error) {
	var payables []*AccountPayable
	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	if status != nil {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if supplierId != 0 {
		dbCtx = dbCtx.Where("supplier_id = ?", supplierId)
	}
	if err := dbCtx.Order("account_date DESC").Find(&payables).Error; err != nil {
		return nil, err
	}
	return payables, nil
}

func GetPaymentRecords(ctx context.Context, accountId int) ([]*PaymentRecord, error) {
	if err := utils.ValidateResourceId[AccountPayable](ctx, accountId); err != nil {
		return nil, err
	}
	var payments []*PaymentRecord
	db := config.GetDB()
	err := db.WithContext(ctx).
		Where("account_payable_id = ?", accountId).
		Order("payment_date DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}
