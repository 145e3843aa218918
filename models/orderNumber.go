package models

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// NumberSource yields the random 3-digit suffix of a document number.
// Injectable so tests can pin the suffix and the HTTP edge can retry a
// duplicate-number insert with a fresh draw.
type NumberSource interface {
	Suffix() int
}

type randomNumberSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *randomNumberSource) Suffix() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(1000)
}

var (
	numberSource NumberSource = &randomNumberSource{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
	numberNow                 = time.Now
)

func SetNumberSource(s NumberSource) {
	numberSource = s
}

// Document numbers are <prefix><YYYYMMDD><3 digits>, e.g. XS20260901042.
// Uniqueness is enforced by the order_number unique index, not the
// generator; callers retry on ConflictError.
func generateOrderNumber(prefix string) string {
	return fmt.Sprintf("%s%s%03d", prefix, numberNow().Format("20060102"), numberSource.Suffix())
}

func GeneratePurchaseOrderNumber() string {
	return generateOrderNumber("CG")
}

func GenerateSalesOrderNumber() string {
	return generateOrderNumber("XS")
}

func GenerateAdjustmentOrderNumber() string {
	return generateOrderNumber("TZ")
}

func GenerateDyeingOrderNumber() string {
	return generateOrderNumber("RS")
}

func GenerateInventoryCheckNumber() string {
	return generateOrderNumber("PD")
}
