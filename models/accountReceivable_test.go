package models

import (
	"testing"
	"time"
)

func TestNewAccountReceivableDerivesBalance(t *testing.T) {
	receivable, err := newAccountReceivable(&NewAccountReceivable{
		CustomerName:     "Zhang Textiles",
		ReceivableAmount: dec("1000"),
		ReceivedAmount:   dec("250"),
		AccountDate:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !receivable.UnpaidAmount.Equal(dec("750")) {
		t.Errorf("unpaid = %s, want 750", receivable.UnpaidAmount)
	}
	if receivable.Status != AccountStatusUnsettled {
		t.Errorf("status = %s, want Unsettled", receivable.Status)
	}
}

func TestNewAccountReceivableSettledWhenFullyPaid(t *testing.T) {
	receivable, err := newAccountReceivable(&NewAccountReceivable{
		CustomerName:     "Zhang Textiles",
		ReceivableAmount: dec("1000"),
		ReceivedAmount:   dec("1000"),
		AccountDate:      time.Now(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receivable.Status != AccountStatusSettled {
		t.Errorf("status = %s, want Settled", receivable.Status)
	}
}

func TestAccountStatusForOverpayment(t *testing.T) {
	// Overpayment drives unpaid negative; the account counts as settled
	// and unpaid stays exactly total minus paid.
	if accountStatusFor(dec("-50")) != AccountStatusSettled {
		t.Fatal("negative unpaid must read Settled")
	}
	if accountStatusFor(dec("0.01")) != AccountStatusUnsettled {
		t.Fatal("positive unpaid must read Unsettled")
	}
}

func TestNewAccountReceivableStandaloneStoresNoOrderRef(t *testing.T) {
	// Accounts not tied to a sales order must leave the order reference
	// NULL, or the unique index would reject every standalone account
	// after the first.
	receivable, err := newAccountReceivable(&NewAccountReceivable{
		CustomerName:     "Zhang Textiles",
		ReceivableAmount: dec("100"),
		AccountDate:      time.Now(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receivable.SalesOrderId != nil {
		t.Fatalf("standalone receivable got order ref %d", *receivable.SalesOrderId)
	}

	tied, err := newAccountReceivable(&NewAccountReceivable{
		CustomerName:     "Zhang Textiles",
		SalesOrderId:     42,
		ReceivableAmount: dec("100"),
		AccountDate:      time.Now(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tied.SalesOrderId == nil || *tied.SalesOrderId != 42 {
		t.Fatalf("order-derived receivable lost its order ref")
	}
}

func TestNewAccountReceivableZeroAmount(t *testing.T) {
	receivable, err := newAccountReceivable(&NewAccountReceivable{
		CustomerName: "Zhang Textiles",
		AccountDate:  time.Now(),
	})
	if err != nil {
		t.Fatalf("zero receivable must be accepted: %v", err)
	}
	if receivable.Status != AccountStatusSettled {
		t.Errorf("status = %s, want Settled", receivable.Status)
	}
}

func TestNewAccountReceivableRejectsNegativeAmounts(t *testing.T) {
	if _, err := newAccountReceivable(&NewAccountReceivable{
		CustomerName:     "Zhang Textiles",
		ReceivableAmount: dec("-1"),
		AccountDate:      time.Now(),
	}); err == nil {
		t.Fatal("negative receivable must be rejected")
	}
}

func TestNewAccountPayableDerivesBalance(t *testing.T) {
	payable, err := newAccountPayable(&NewAccountPayable{
		SupplierName:  "Wu Yarn Mill",
		PayableAmount: dec("5000"),
		PaidAmount:    dec("5000.01"),
		AccountDate:   time.Now(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !payable.UnpaidAmount.Equal(dec("-0.01")) {
		t.Errorf("unpaid = %s, want -0.01", payable.UnpaidAmount)
	}
	if payable.Status != AccountStatusSettled {
		t.Errorf("status = %s, want Settled", payable.Status)
	}
	if payable.PurchaseOrderId != nil {
		t.Errorf("standalone payable got order ref %d", *payable.PurchaseOrderId)
	}
}
