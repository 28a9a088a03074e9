package pipeline

import (
	"time"

	"shopclean/internal"
	"shopclean/internal/mapping"
	"shopclean/internal/util"
)

// headerRow carries the trimmed cells of one order-header row.
type headerRow struct {
	OrderID      string
	CustomerName string
	Email        string
	Address      string
	Total        string
	Date         string
	Subtotal     string
	Discount     string
}

// classifier decides, per header row, whether the order opens a new
// context or is rejected. The seen set is scoped to one run, so a fresh
// classifier is built for every pass.
type classifier struct {
	tables mapping.Tables
	loc    *time.Location
	seen   map[string]struct{}
}

func newClassifier(tables mapping.Tables, loc *time.Location) *classifier {
	return &classifier{tables: tables, loc: loc, seen: make(map[string]struct{})}
}

// classify applies the rejection filters in fixed order: test identity,
// zero value, duplicate id. Only a valid verdict yields an order context.
func (c *classifier) classify(row headerRow) (internal.Verdict, *internal.OrderContext) {
	if c.tables.IsTestOrder(row.Email, row.CustomerName) {
		return internal.VerdictTest, nil
	}

	if util.ParseAmount(row.Total) == 0 {
		return internal.VerdictZero, nil
	}

	if _, dup := c.seen[row.OrderID]; dup {
		return internal.VerdictDuplicate, nil
	}
	c.seen[row.OrderID] = struct{}{}

	ctx := internal.OrderContext{
		ID:           row.OrderID,
		CustomerName: CleanCustomerName(row.CustomerName),
		Address:      ParseAddress(row.Address),
		Total:        CleanCurrency(row.Total),
		Date:         CleanDate(row.Date, c.loc),
		Email:        row.Email,
		Subtotal:     CleanCurrency(row.Subtotal),
		Discount:     ParseDiscount(row.Discount),
	}
	return internal.VerdictValid, &ctx
}

func (c *classifier) ordersSeen() int {
	return len(c.seen)
}
