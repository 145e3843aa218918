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

// AccountReceivable tracks what a customer still owes for one sales order.
// UnpaidAmount and Status are always derived from the other two amounts;
// receipts are append-only and never edited in place.
type AccountReceivable struct {
	ID               int             `gorm:"primary_key" json:"id"`
	CustomerId       int             `json:"customer_id"`
	CustomerName     string          `gorm:"size:100;not null" json:"customer_name"`
	SalesOrderId     *int            `gorm:"uniqueIndex" json:"sales_order_id"`
	SalesOrderNumber string          `gorm:"size:50" json:"sales_order_number"`
	ReceivableAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"receivable_amount"`
	ReceivedAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"received_amount"`
	UnpaidAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"unpaid_amount"`
	AccountDate      time.Time       `gorm:"type:date;not null" json:"account_date"`
	Status           AccountStatus   `gorm:"type:enum('Unsettled','Settled');not null;default:'Unsettled'" json:"status"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type ReceiptRecord struct {
	ID                  int             `gorm:"primary_key" json:"id"`
	AccountReceivableId int             `gorm:"index;not null" json:"account_receivable_id"`
	Amount              decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentMethod       PaymentMethod   `gorm:"type:enum('Cash','Transfer','Check','Other');not null;default:'Transfer'" json:"payment_method"`
	ReceiptDate         time.Time       `gorm:"type:date;not null" json:"receipt_date"`
	Operator            string          `gorm:"size:50" json:"operator"`
	Remark              string          `gorm:"size:200" json:"remark"`
	CreatedAt           time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewAccountReceivable struct {
	CustomerId       int             `json:"customer_id"`
	CustomerName     string          `json:"customer_name" binding:"required"`
	SalesOrderId     int             `json:"sales_order_id"`
	SalesOrderNumber string          `json:"sales_order_number"`
	ReceivableAmount decimal.Decimal `json:"receivable_amount"`
	ReceivedAmount   decimal.Decimal `json:"received_amount"`
	AccountDate      time.Time       `json:"account_date" binding:"required"`
}

type NewReceiptRecord struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	ReceiptDate   time.Time       `json:"receipt_date" binding:"required"`
	Operator      string          `json:"operator"`
	Remark        string          `json:"remark"`
}

func accountStatusFor(unpaid decimal.Decimal) AccountStatus {
	if unpaid.IsPositive() {
		return AccountStatusUnsettled
	}
	return AccountStatusSettled
}

// newAccountReceivable is the single constructor for both the manual
// endpoint and the auto-created row on shipment, so the derived fields
// can never disagree.
func newAccountReceivable(input *NewAccountReceivable) (*AccountReceivable, error) {
	if input.ReceivableAmount.IsNegative() {
		return nil, utils.NewValidationError("receivable amount cannot be negative")
	}
	if input.ReceivedAmount.IsNegative() {
		return nil, utils.NewValidationError("received amount cannot be negative")
	}
	// Standalone accounts store NULL so the unique index only guards
	// order-derived rows against duplication.
	var salesOrderId *int
	if input.SalesOrderId != 0 {
		salesOrderId = &input.SalesOrderId
	}
	unpaid := input.ReceivableAmount.Sub(input.ReceivedAmount)
	return &AccountReceivable{
		CustomerId:       input.CustomerId,
		CustomerName:     input.CustomerName,
		SalesOrderId:     salesOrderId,
		SalesOrderNumber: input.SalesOrderNumber,
		ReceivableAmount: input.ReceivableAmount,
		ReceivedAmount:   input.ReceivedAmount,
		UnpaidAmount:     unpaid,
		AccountDate:      input.AccountDate,
		Status:           accountStatusFor(unpaid),
	}, nil
}

func CreateAccountReceivable(ctx context.Context, input *NewAccountReceivable) (*AccountReceivable, error) {
	receivable, err := newAccountReceivable(input)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(receivable).Error; err != nil {
		return nil, utils.TranslateDBError(err)
	}
	return receivable, nil
}

func createReceivableForSalesOrder(tx *gorm.DB, order *SalesOrder) error {
	receivable, err := newAccountReceivable(&NewAccountReceivable{
		CustomerId:       order.CustomerId,
		CustomerName:     order.CustomerName,
		SalesOrderId:     order.ID,
		SalesOrderNumber: order.OrderNumber,
		ReceivableAmount: order.TotalAmount,
		ReceivedAmount:   order.ReceivedAmount,
		AccountDate:      order.SalesDate,
	})
	if err != nil {
		return err
	}
	if err := tx.Create(receivable).Error; err != nil {
		return utils.TranslateDBError(err)
	}
	return nil
}

// CreateReceiptRecord appends a receipt and rolls the account balances
// forward. The account row is locked so concurrent receipts serialize, and
// the originating sales order's balances move in the same transaction.
func CreateReceiptRecord(ctx context.Context, accountId int, input *NewReceiptRecord) (*ReceiptRecord, error) {
	if !input.Amount.IsPositive() {
		return nil, utils.NewValidationError("receipt amount must be positive")
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
	var receivable AccountReceivable
	err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&receivable, accountId).Error
	if err != nil {
		tx.Rollback()
		return nil, utils.TranslateDBError(err)
	}

	receipt := ReceiptRecord{
		AccountReceivableId: accountId,
		Amount:              input.Amount,
		PaymentMethod:       paymentMethod,
		ReceiptDate:         input.ReceiptDate,
		Operator:            operator,
		Remark:              input.Remark,
	}
	if err := tx.WithContext(ctx).Create(&receipt).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	received := receivable.ReceivedAmount.Add(input.Amount)
	unpaid := receivable.ReceivableAmount.Sub(received)
	err = tx.WithContext(ctx).Model(&receivable).
		Updates(map[string]interface{}{
			"ReceivedAmount": received,
			"UnpaidAmount":   unpaid,
			"Status":         accountStatusFor(unpaid),
		}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if receivable.SalesOrderId != nil {
		err = tx.WithContext(ctx).Model(&SalesOrder{}).
			Where("id = ?", *receivable.SalesOrderId).
			Updates(map[string]interface{}{
				"received_amount": gorm.Expr("received_amount + ?", input.Amount),
				"unpaid_amount":   gorm.Expr("unpaid_amount - ?", input.Amount),
			}).Error
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

func GetAccountReceivable(ctx context.Context, id int) (*AccountReceivable, error) {
	return utils.FetchModel[AccountReceivable](ctx, id)
}

func GetAccountReceivables(ctx context.Context, status *AccountStatus, customerId int) ([]*AccountReceivable, error) {
	var receivables []*AccountReceivable
	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	if status != nil {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if customerId != 0 {
		dbCtx = dbCtx.Where("customer_id = ?", customerId)
	}
	if err := dbCtx.Order("account_date DESC").Find(&receivables).Error; err != nil {
		return nil, err
	}
	return receivables, nil
}

func GetReceiptRecords(ctx context.Context, accountId int) ([]*ReceiptRecord, error) {
	if err := utils.ValidateResourceId[AccountReceivable](ctx, accountId); err != nil {
		return nil, err
	}
	var receipts []*ReceiptRecord
	db := config.GetDB()
	err := db.WithContext(ctx).
		Where("account_receivable_id = ?", accountId).
		Order("receipt_date DESC").
		Find(&receipts).Error
	if err != nil {
		return nil, err
	}
	return receipts, nil
}
