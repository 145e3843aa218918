package models_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/Alucard672/shaxian/config"
	"github.com/Alucard672/shaxian/models"
	"github.com/Alucard672/shaxian/utils"
	"github.com/shopspring/decimal"
)

// setupTestDatabase boots a throwaway MySQL container and points the
// config package at it.
func setupTestDatabase(t *testing.T) {
	t.Helper()
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	name, port := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(name) })

	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", port)
	t.Setenv("DB_NAME", "shaxian_test")

	config.ConnectDatabaseWithRetry()
	models.MigrateTable()
}

func mustDec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func createTestBatch(t *testing.T, ctx context.Context, stock string) *models.Batch {
	t.Helper()
	product, err := models.CreateProduct(ctx, &models.NewProduct{
		Name: "32S Combed Yarn",
		Code: fmt.Sprintf("P-%d", time.Now().UnixNano()),
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	color, err := models.CreateColor(ctx, &models.NewColor{
		ProductId: product.ID,
		Code:      "C01",
		Name:      "Navy",
	})
	if err != nil {
		t.Fatalf("CreateColor: %v", err)
	}
	batch, err := models.CreateBatch(ctx, &models.NewBatch{
		ColorId:         color.ID,
		Code:            fmt.Sprintf("B-%d", time.Now().UnixNano()),
		InitialQuantity: mustDec(stock),
	})
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	return batch
}

func batchStock(t *testing.T, ctx context.Context, id int) decimal.Decimal {
	t.Helper()
	batch, err := models.GetBatch(ctx, id)
	if err != nil {
		t.Fatalf("GetBatch: %v", err)
	}
	return batch.StockQuantity
}

// Shipping a sales order posts the stock delta exactly once and derives
// the receivable account; a second ship attempt is rejected without
// touching stock again.
func TestSalesOrderShipmentFlow(t *testing.T) {
	setupTestDatabase(t)
	ctx := utils.SetOperatorInContext(context.Background(), "tester")

	batch := createTestBatch(t, ctx, "100")

	order, err := models.CreateSalesOrder(ctx, &models.NewSalesOrder{
		CustomerName: "Zhang Textiles",
		SalesDate:    time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Items: []*models.NewSalesOrderItem{
			{BatchId: batch.ID, Quantity: mustDec("30"), Price: mustDec("25.50")},
		},
	})
	if err != nil {
		t.Fatalf("CreateSalesOrder: %v", err)
	}
	if !order.TotalAmount.Equal(mustDec("765")) {
		t.Fatalf("total = %s, want 765", order.TotalAmount)
	}
	if got := batchStock(t, ctx, batch.ID); !got.Equal(mustDec("100")) {
		t.Fatalf("draft order moved stock: %s", got)
	}

	if _, err := models.UpdateSalesOrderStatus(ctx, order.ID, models.SalesOrderStatusApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if got := batchStock(t, ctx, batch.ID); !got.Equal(mustDec("100")) {
		t.Fatalf("approval moved stock: %s", got)
	}

	if _, err := models.UpdateSalesOrderStatus(ctx, order.ID, models.SalesOrderStatusShipped); err != nil {
		t.Fatalf("ship: %v", err)
	}
	if got := batchStock(t, ctx, batch.ID); !got.Equal(mustDec("70")) {
		t.Fatalf("stock after ship = %s, want 70", got)
	}

	// Repeat ship attempt must fail as a state error and leave stock alone.
	_, err = models.UpdateSalesOrderStatus(ctx, order.ID, models.SalesOrderStatusShipped)
	var stateErr *utils.StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError on re-ship, got %v", err)
	}
	if got := batchStock(t, ctx, batch.ID); !got.Equal(mustDec("70")) {
		t.Fatalf("re-ship attempt moved stock: %s", got)
	}

	// Shipping derived the receivable account from the order.
	receivables, err := models.GetAccountReceivables(ctx, nil, 0)
	if err != nil {
		t.Fatalf("GetAccountReceivables: %v", err)
	}
	var receivable *models.AccountReceivable
	for _, r := range receivables {
		if r.SalesOrderId != nil && *r.SalesOrderId == order.ID {
			receivable = r
		}
	}
	if receivable == nil {
		t.Fatal("no receivable derived from shipped order")
	}
	if !receivable.ReceivableAmount.Equal(mustDec("765")) || !receivable.UnpaidAmount.Equal(mustDec("765")) {
		t.Fatalf("receivable %s unpaid %s, want 765/765", receivable.ReceivableAmount, receivable.UnpaidAmount)
	}
	if receivable.Status != models.AccountStatusUnsettled {
		t.Fatalf("receivable status = %s", receivable.Status)
	}

	// Shipped orders reject edits and deletion; the guard runs under the
	// same row lock as the item replace.
	if _, err := models.DeleteSalesOrder(ctx, order.ID); !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError on delete, got %v", err)
	}
	_, err = models.UpdateSalesOrder(ctx, order.ID, &models.NewSalesOrder{
		CustomerName: "Zhang Textiles",
		SalesDate:    time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Items: []*models.NewSalesOrderItem{
			{BatchId: batch.ID, Quantity: mustDec("1"), Price: mustDec("25.50")},
		},
	})
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError on edit, got %v", err)
	}
	if got := batchStock(t, ctx, batch.ID); !got.Equal(mustDec("70")) {
		t.Fatalf("rejected edit moved stock: %s", got)
	}
}

// A draft edit that omits received_amount keeps the creation-time seed;
// balances are only re-derived against the new total.
func TestDraftEditKeepsReceivedSeed(t *testing.T) {
	setupTestDatabase(t)
	ctx := utils.SetOperatorInContext(context.Background(), "tester")

	batch := createTestBatch(t, ctx, "50")
	seed := mustDec("100")
	order, err := models.CreateSalesOrder(ctx, &models.NewSalesOrder{
		CustomerName:   "Zhang Textiles",
		SalesDate:      time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
		ReceivedAmount: &seed,
		Items: []*models.NewSalesOrderItem{
			{BatchId: batch.ID, Quantity: mustDec("10"), Price: mustDec("20")},
		},
	})
	if err != nil {
		t.Fatalf("CreateSalesOrder: %v", err)
	}
	if !order.UnpaidAmount.Equal(mustDec("100")) {
		t.Fatalf("unpaid = %s, want 100", order.UnpaidAmount)
	}

	updated, err := models.UpdateSalesOrder(ctx, order.ID, &models.NewSalesOrder{
		CustomerName: "Zhang Textiles",
		SalesDate:    time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
		Items: []*models.NewSalesOrderItem{
			{BatchId: batch.ID, Quantity: mustDec("5"), Price: mustDec("20")},
		},
	})
	if err != nil {
		t.Fatalf("UpdateSalesOrder: %v", err)
	}
	if !updated.ReceivedAmount.Equal(mustDec("100")) {
		t.Fatalf("received = %s, want preserved 100", updated.ReceivedAmount)
	}
	if !updated.UnpaidAmount.IsZero() {
		t.Fatalf("unpaid = %s, want 0", updated.UnpaidAmount)
	}
}

// Multiple accounts with no originating order must coexist; only
// order-derived rows are guarded by the unique index.
func TestStandaloneAccountsCoexist(t *testing.T) {
	setupTestDatabase(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := models.CreateAccountReceivable(ctx, &models.NewAccountReceivable{
			CustomerName:     fmt.Sprintf("Customer %d", i),
			ReceivableAmount: mustDec("100"),
			AccountDate:      time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		}); err != nil {
			t.Fatalf("standalone receivable %d: %v", i, err)
		}
		if _, err := models.CreateAccountPayable(ctx, &models.NewAccountPayable{
			SupplierName:  fmt.Sprintf("Supplier %d", i),
			PayableAmount: mustDec("100"),
			AccountDate:   time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		}); err != nil {
			t.Fatalf("standalone payable %d: %v", i, err)
		}
	}
}

// Completing an adjustment applies the signed deltas; reverting to Draft
// restores every batch; re-completing with the same items round-trips.
func TestAdjustmentOrderApplyAndRevert(t *testing.T) {
	setupTestDatabase(t)
	ctx := utils.SetOperatorInContext(context.Background(), "tester")

	up := createTestBatch(t, ctx, "40")
	down := createTestBatch(t, ctx, "40")

	order, err := models.CreateAdjustmentOrder(ctx, &models.NewAdjustmentOrder{
		Type:           models.AdjustmentTypeCountSurplus,
		AdjustmentDate: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		Items: []*models.NewAdjustmentOrderItem{
			{BatchId: up.ID, Quantity: mustDec("25")},
			{BatchId: down.ID, Quantity: mustDec("-10")},
		},
	})
	if err != nil {
		t.Fatalf("CreateAdjustmentOrder: %v", err)
	}
	if !order.TotalQuantity.Equal(mustDec("35")) {
		t.Fatalf("total quantity = %s, want 35", order.TotalQuantity)
	}

	if _, err := models.UpdateAdjustmentOrderStatus(ctx, order.ID, models.AdjustmentOrderStatusCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got := batchStock(t, ctx, up.ID); !got.Equal(mustDec("65")) {
		t.Fatalf("stock after complete = %s, want 65", got)
	}
	if got := batchStock(t, ctx, down.ID); !got.Equal(mustDec("30")) {
		t.Fatalf("stock after complete = %s, want 30", got)
	}

	// Editing a completed adjustment with an identical item list must not
	// move any batch.
	if _, err := models.UpdateAdjustmentOrder(ctx, order.ID, &models.NewAdjustmentOrder{
		Type:           models.AdjustmentTypeCountSurplus,
		AdjustmentDate: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		Items: []*models.NewAdjustmentOrderItem{
			{BatchId: up.ID, Quantity: mustDec("25")},
			{BatchId: down.ID, Quantity: mustDec("-10")},
		},
	}); err != nil {
		t.Fatalf("update completed adjustment: %v", err)
	}
	if got := batchStock(t, ctx, up.ID); !got.Equal(mustDec("65")) {
		t.Fatalf("identical-item edit moved stock: %s", got)
	}

	if _, err := models.UpdateAdjustmentOrderStatus(ctx, order.ID, models.AdjustmentOrderStatusDraft); err != nil {
		t.Fatalf("revert: %v", err)
	}
	if got := batchStock(t, ctx, up.ID); !got.Equal(mustDec("40")) {
		t.Fatalf("stock after revert = %s, want 40", got)
	}
	if got := batchStock(t, ctx, down.ID); !got.Equal(mustDec("40")) {
		t.Fatalf("stock after revert = %s, want 40", got)
	}
}

// Receipts append to the receivable and roll the originating sales order
// forward in the same transaction; settlement status is derived.
func TestReceiptAppendsRollBalancesForward(t *testing.T) {
	setupTestDatabase(t)
	ctx := utils.SetOperatorInContext(context.Background(), "tester")

	account, err := models.CreateAccountReceivable(ctx, &models.NewAccountReceivable{
		CustomerName:     "Zhang Textiles",
		ReceivableAmount: mustDec("500"),
		AccountDate:      time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateAccountReceivable: %v", err)
	}

	if _, err := models.CreateReceiptRecord(ctx, account.ID, &models.NewReceiptRecord{
		Amount:      mustDec("200"),
		ReceiptDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("first receipt: %v", err)
	}
	refreshed, err := models.GetAccountReceivable(ctx, account.ID)
	if err != nil {
		t.Fatalf("GetAccountReceivable: %v", err)
	}
	if !refreshed.ReceivedAmount.Equal(mustDec("200")) || !refreshed.UnpaidAmount.Equal(mustDec("300")) {
		t.Fatalf("received %s unpaid %s, want 200/300", refreshed.ReceivedAmount, refreshed.UnpaidAmount)
	}
	if refreshed.Status != models.AccountStatusUnsettled {
		t.Fatalf("status = %s, want Unsettled", refreshed.Status)
	}

	if _, err := models.CreateReceiptRecord(ctx, account.ID, &models.NewReceiptRecord{
		Amount:      mustDec("300"),
		ReceiptDate: time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("second receipt: %v", err)
	}
	refreshed, err = models.GetAccountReceivable(ctx, account.ID)
	if err != nil {
		t.Fatalf("GetAccountReceivable: %v", err)
	}
	if refreshed.Status != models.AccountStatusSettled || !refreshed.UnpaidAmount.IsZero() {
		t.Fatalf("status %s unpaid %s, want Settled/0", refreshed.Status, refreshed.UnpaidAmount)
	}

	// Non-positive receipts are rejected before anything is written.
	_, err = models.CreateReceiptRecord(ctx, account.ID, &models.NewReceiptRecord{
		Amount:      mustDec("-5"),
		ReceiptDate: time.Now(),
	})
	var validationErr *utils.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	receipts, err := models.GetReceiptRecords(ctx, account.ID)
	if err != nil {
		t.Fatalf("GetReceiptRecords: %v", err)
	}
	if len(receipts) != 2 {
		t.Fatalf("got %d receipts, want 2", len(receipts))
	}
}

// The receipt-into-stock trigger for purchases is feature-flagged; the
// payable side is derived either way.
func TestPurchaseOrderStockInFlagged(t *testing.T) {
	setupTestDatabase(t)
	ctx := utils.SetOperatorInContext(context.Background(), "tester")

	batch := createTestBatch(t, ctx, "10")
	newOrder := func() *models.NewPurchaseOrder {
		return &models.NewPurchaseOrder{
			SupplierName: "Wu Yarn Mill",
			PurchaseDate: time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
			Items: []*models.NewPurchaseOrderItem{
				{BatchId: batch.ID, Quantity: mustDec("50"), Price: mustDec("10")},
			},
		}
	}

	t.Setenv("PURCHASE_RECEIPT_STOCK", "")
	order, err := models.CreatePurchaseOrder(ctx, newOrder())
	if err != nil {
		t.Fatalf("CreatePurchaseOrder: %v", err)
	}
	if _, err := models.UpdatePurchaseOrderStatus(ctx, order.ID, models.PurchaseOrderStatusStockedIn); err != nil {
		t.Fatalf("stock in: %v", err)
	}
	if got := batchStock(t, ctx, batch.ID); !got.Equal(mustDec("10")) {
		t.Fatalf("flag off: stock moved to %s", got)
	}

	t.Setenv("PURCHASE_RECEIPT_STOCK", "1")
	order, err = models.CreatePurchaseOrder(ctx, newOrder())
	if err != nil {
		t.Fatalf("CreatePurchaseOrder: %v", err)
	}
	if _, err := models.UpdatePurchaseOrderStatus(ctx, order.ID, models.PurchaseOrderStatusStockedIn); err != nil {
		t.Fatalf("stock in: %v", err)
	}
	if got := batchStock(t, ctx, batch.ID); !got.Equal(mustDec("60")) {
		t.Fatalf("flag on: stock = %s, want 60", got)
	}

	payables, err := models.GetAccountPayables(ctx, nil, 0)
	if err != nil {
		t.Fatalf("GetAccountPayables: %v", err)
	}
	found := false
	for _, p := range payables {
		if p.PurchaseOrderId != nil && *p.PurchaseOrderId == order.ID {
			found = true
			if !p.PayableAmount.Equal(mustDec("500")) {
				t.Fatalf("payable = %s, want 500", p.PayableAmount)
			}
		}
	}
	if !found {
		t.Fatal("no payable derived from stocked-in order")
	}
}

// Duplicate batch codes surface as ConflictError via the unique index.
func TestDuplicateBatchCodeConflict(t *testing.T) {
	setupTestDatabase(t)
	ctx := context.Background()

	batch := createTestBatch(t, ctx, "5")
	_, err := models.CreateBatch(ctx, &models.NewBatch{
		ColorId:         batch.ColorId,
		Code:            batch.Code,
		InitialQuantity: mustDec("1"),
	})
	var conflictErr *utils.ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func startMySQLContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("shaxian-test-mysql-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "MYSQL_ROOT_PASSWORD=testpw",
		"-e", "MYSQL_DATABASE=shaxian_test",
		"-p", "127.0.0.1:0:3306",
		"mysql:8.0",
		"--default-authentication-plugin=mysql_native_password",
	)
	if err != nil {
		t.Fatalf("start mysql container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "3306/tcp")
	if err != nil {
		t.Fatalf("mysql docker port: %v", err)
	}
	// wait until ready
	deadline := time.Now().Add(120 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "mysqladmin", "ping", "-h", "127.0.0.1", "-ptestpw", "--silent")
		if err == nil {
			return name, port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("mysql did not become ready")
	return "", ""
}

func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	re := regexp.MustCompile(`:(\d+)`)
	m := re.FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	cmd := exec.Command("docker", args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}
