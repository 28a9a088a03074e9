package pipeline

import (
	"testing"
	"time"

	"shopclean/internal"
	"shopclean/internal/mapping"
)

func classifyTables() mapping.Tables {
	return mapping.Tables{
		TestEmails:        []string{"test@", "demo@"},
		TestCustomerNames: []string{"Test Customer"},
	}
}

func TestClassifyValidOrder(t *testing.T) {
	cls := newClassifier(classifyTables(), time.UTC)

	verdict, ctx := cls.classify(headerRow{
		OrderID:      "#1001",
		CustomerName: " Linda   Powers ",
		Email:        "linda@example.com",
		Address:      "Middleton NS Canada",
		Total:        "CAD86.17",
		Date:         "2026-02-06T12:34:04Z",
		Subtotal:     "CAD80.00",
		Discount:     "5.00 manual",
	})
	if verdict != internal.VerdictValid || ctx == nil {
		t.Fatalf("verdict = %s, ctx = %v", verdict, ctx)
	}
	if ctx.CustomerName != "Linda Powers" {
		t.Errorf("customer name = %q", ctx.CustomerName)
	}
	if ctx.Address.Province != "NS" || ctx.Address.Country != "Canada" {
		t.Errorf("address = %+v", ctx.Address)
	}
	if ctx.Date != "2026-02-06 12:34:04" {
		t.Errorf("date = %q", ctx.Date)
	}
	if ctx.Discount.Amount != "5.00" || ctx.Discount.Type != "manual" {
		t.Errorf("discount = %+v", ctx.Discount)
	}
}

func TestClassifyTestOrder(t *testing.T) {
	cls := newClassifier(classifyTables(), time.UTC)

	// Test orders are rejected before the zero-value check, so even a
	// non-zero total stays rejected.
	verdict, ctx := cls.classify(headerRow{OrderID: "#1", Email: "buyer@test@shop.io", Total: "50.00"})
	if verdict != internal.VerdictTest || ctx != nil {
		t.Fatalf("verdict = %s", verdict)
	}

	verdict, _ = cls.classify(headerRow{OrderID: "#2", CustomerName: "A Test Customer", Total: "50.00"})
	if verdict != internal.VerdictTest {
		t.Fatalf("verdict = %s", verdict)
	}
}

func TestClassifyZeroOrder(t *testing.T) {
	cls := newClassifier(classifyTables(), time.UTC)

	for _, total := range []string{"", "$0.00", "CAD0", "free"} {
		verdict, _ := cls.classify(headerRow{OrderID: "#1", Email: "a@b.c", Total: total})
		if verdict != internal.VerdictZero {
			t.Errorf("total %q: verdict = %s, want %s", total, verdict, internal.VerdictZero)
		}
	}
}

func TestClassifyDuplicate(t *testing.T) {
	cls := newClassifier(classifyTables(), time.UTC)

	row := headerRow{OrderID: "#1001", Email: "a@b.c", Total: "10.00"}
	if verdict, _ := cls.classify(row); verdict != internal.VerdictValid {
		t.Fatalf("first occurrence rejected")
	}
	if verdict, ctx := cls.classify(row); verdict != internal.VerdictDuplicate || ctx != nil {
		t.Fatalf("second occurrence not flagged as duplicate")
	}
	if cls.ordersSeen() != 1 {
		t.Fatalf("ordersSeen = %d, want 1", cls.ordersSeen())
	}
}

func TestRejectedVerdictsDoNotReserveID(t *testing.T) {
	cls := newClassifier(classifyTables(), time.UTC)

	// A zero-value occurrence must not mark the id as seen.
	if verdict, _ := cls.classify(headerRow{OrderID: "#1001", Email: "a@b.c", Total: "0"}); verdict != internal.VerdictZero {
		t.Fatal("expected zero verdict")
	}
	if verdict, _ := cls.classify(headerRow{OrderID: "#1001", Email: "a@b.c", Total: "25.00"}); verdict != internal.VerdictValid {
		t.Fatal("valid retry after zero-value rejection should open the order")
	}
}
