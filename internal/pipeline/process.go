package pipeline

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"shopclean/internal"
	"shopclean/internal/config"
	"shopclean/internal/mapping"
	"shopclean/internal/sheet"
	"shopclean/internal/storage"
)

// OutputHeaders is the cleaned sheet schema. Column order is significant.
var OutputHeaders = []string{
	"Order ID",
	"Product Code",
	"Product Name",
	"Product Price",
	"Quantity",
	"Customer Name",
	"City",
	"Province",
	"Country",
	"Order Total",
	"Order Date",
	"Email",
	"Subtotal",
	"Discount Amount",
	"Discount Type",
}

type columns struct {
	id          int
	items       int
	customer    int
	productCode int
	address     int
	total       int
	date        int
	email       int
	subtotal    int
	discount    int
}

// mapColumns locates the raw export columns by header name. Only ID and
// Items are hard requirements; every other column degrades to always-empty
// so header drift in the export does not abort the run.
func mapColumns(table sheet.Table) (columns, error) {
	cols := columns{
		id:          table.Index("ID"),
		items:       table.Index("Items"),
		customer:    table.Index("Customer Name"),
		productCode: table.Index("Product Code"),
		address:     table.Index("Shipping address"),
		total:       table.Index("Order total"),
		date:        table.Index("Date"),
		email:       table.Index("Email"),
		subtotal:    table.Index("Subtotal"),
		discount:    table.Index("Discount"),
	}
	if cols.id == -1 || cols.items == -1 {
		return columns{}, fmt.Errorf("raw sheet %q is missing required columns (need ID and Items)", table.Name)
	}
	return cols, nil
}

type CleanResult struct {
	Items []internal.LineItem
	Stats internal.RunStats
}

// Clean is the full pass over the raw table: a sequential fold with one
// piece of state, the currently open order context. Header rows drive the
// classifier; item-bearing rows (header or continuation) emit line items
// while a context is open. Continuation rows after a rejected header find
// no open context and are skipped without error.
func Clean(table sheet.Table, tables mapping.Tables, loc *time.Location) (CleanResult, error) {
	cols, err := mapColumns(table)
	if err != nil {
		return CleanResult{}, err
	}

	cls := newClassifier(tables, loc)
	resolver := mapping.NewResolver(tables)

	var stats internal.RunStats
	var items []internal.LineItem
	var open *internal.OrderContext

	for _, row := range table.Rows {
		orderID := strings.TrimSpace(table.Cell(row, cols.id))
		itemText := strings.TrimSpace(table.Cell(row, cols.items))
		customerName := strings.TrimSpace(table.Cell(row, cols.customer))
		email := strings.ToLower(strings.TrimSpace(table.Cell(row, cols.email)))

		if orderID == "" && itemText == "" && customerName == "" {
			stats.EmptyRows++
			continue
		}

		if orderID != "" {
			verdict, ctx := cls.classify(headerRow{
				OrderID:      orderID,
				CustomerName: customerName,
				Email:        email,
				Address:      table.Cell(row, cols.address),
				Total:        table.Cell(row, cols.total),
				Date:         table.Cell(row, cols.date),
				Subtotal:     table.Cell(row, cols.subtotal),
				Discount:     table.Cell(row, cols.discount),
			})

			switch verdict {
			case internal.VerdictValid:
				open = ctx
			case internal.VerdictTest:
				stats.TestOrders++
				open = nil
			case internal.VerdictZero:
				stats.ZeroOrders++
				open = nil
			case internal.VerdictDuplicate:
				stats.Duplicates++
				open = nil
			}
		}

		if itemText == "" || open == nil {
			continue
		}

		parsed := ParseItem(itemText)
		productCode := strings.TrimSpace(table.Cell(row, cols.productCode))
		res := resolver.Resolve(productCode, parsed.ProductName)

		switch res.Outcome {
		case internal.ResolvedExcluded:
			stats.Excluded++
			continue
		case internal.ResolvedByCode:
			stats.MappedByCode++
		case internal.ResolvedByName:
			stats.MappedByName++
		case internal.ResolvedUnmapped:
			stats.Unmapped++
		}

		items = append(items, internal.LineItem{
			OrderID:      open.ID,
			ProductCode:  res.Code,
			ProductName:  res.Name,
			ProductPrice: parsed.Price,
			Quantity:     parsed.Quantity,
			CustomerName: open.CustomerName,
			City:         open.Address.City,
			Province:     open.Address.Province,
			Country:      open.Address.Country,
			OrderTotal:   open.Total,
			OrderDate:    open.Date,
			Email:        open.Email,
			Subtotal:     open.Subtotal,
			DiscountAmt:  open.Discount.Amount,
			DiscountType: open.Discount.Type,
		})
		stats.Processed++
	}

	stats.Orders = cls.ordersSeen()
	return CleanResult{Items: items, Stats: stats}, nil
}

func outputRows(items []internal.LineItem) [][]string {
	rows := make([][]string, 0, len(items))
	for _, li := range items {
		rows = append(rows, []string{
			li.OrderID, li.ProductCode, li.ProductName, li.ProductPrice, li.Quantity,
			li.CustomerName, li.City, li.Province, li.Country,
			li.OrderTotal, li.OrderDate, li.Email, li.Subtotal,
			li.DiscountAmt, li.DiscountType,
		})
	}
	return rows
}

type Service struct {
	db     *storage.DB
	cfg    config.Config
	tables mapping.Tables
}

func NewService(db *storage.DB, cfg config.Config, tables mapping.Tables) *Service {
	return &Service{db: db, cfg: cfg, tables: tables}
}

// Run executes one full clean: read the raw sheet, fold it into line
// items, then overwrite the cleaned sheet in a single bulk write. The
// destination is untouched until the whole pass has succeeded, so a failed
// run leaves the prior cleaned table in place.
func (s *Service) Run() (internal.RunStats, error) {
	loc, err := s.cfg.Location()
	if err != nil {
		return internal.RunStats{}, err
	}

	wb, err := sheet.Open(s.cfg.WorkbookPath)
	if err != nil {
		return internal.RunStats{}, err
	}
	defer wb.Close()

	raw, err := wb.ReadTable(s.cfg.RawSheet)
	if err != nil {
		return internal.RunStats{}, err
	}

	result, err := Clean(raw, s.tables, loc)
	if err != nil {
		return internal.RunStats{}, err
	}

	if err := wb.WriteTable(s.cfg.CleanSheet, OutputHeaders, outputRows(result.Items)); err != nil {
		return internal.RunStats{}, err
	}
	if err := wb.Save(); err != nil {
		return internal.RunStats{}, err
	}

	if s.db != nil {
		if err := s.db.InsertRun(traceID(), result.Stats); err != nil {
			return result.Stats, fmt.Errorf("record run: %w", err)
		}
	}
	return result.Stats, nil
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
