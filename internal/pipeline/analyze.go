package pipeline

import (
	"sort"
	"strings"
	"time"

	"shopclean/internal"
	"shopclean/internal/mapping"
	"shopclean/internal/sheet"
)

// Analyze is the read-only diagnostic variant of the clean pass. It walks
// the raw table with the same classification rules but, instead of
// emitting line items, aggregates product-code usage, groups code-less
// items by parsed name, and suggests code-map entries for unmapped codes.
// The destination sheet is never written.
func Analyze(table sheet.Table, tables mapping.Tables, loc *time.Location) (internal.CodeReport, error) {
	cols, err := mapColumns(table)
	if err != nil {
		return internal.CodeReport{}, err
	}

	cls := newClassifier(tables, loc)
	resolver := mapping.NewResolver(tables)

	var stats internal.RunStats
	codeCounts := map[string]*internal.CodeUsage{}
	var codeOrder []string
	nameCounts := map[string]int{}
	var nameOrder []string

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
		stats.Processed++

		if productCode == "" {
			if _, ok := nameCounts[parsed.ProductName]; !ok {
				nameOrder = append(nameOrder, parsed.ProductName)
			}
			nameCounts[parsed.ProductName]++
			continue
		}

		usage, ok := codeCounts[productCode]
		if !ok {
			usage = &internal.CodeUsage{
				Code:      productCode,
				Mapped:    resolver.KnownCode(productCode),
				FirstName: parsed.ProductName,
			}
			codeCounts[productCode] = usage
			codeOrder = append(codeOrder, productCode)
		}
		usage.Count++
	}

	stats.Orders = cls.ordersSeen()

	report := internal.CodeReport{Stats: stats}
	for _, code := range codeOrder {
		report.Codes = append(report.Codes, *codeCounts[code])
	}
	for _, name := range nameOrder {
		report.NoCode = append(report.NoCode, internal.NameGroup{Name: name, Count: nameCounts[name]})
	}
	for _, usage := range report.Codes {
		if !usage.Mapped {
			report.Suggestions = append(report.Suggestions, internal.Suggestion{
				Code:  usage.Code,
				Name:  usage.FirstName,
				Count: usage.Count,
			})
		}
	}

	sort.Slice(report.Codes, func(i, j int) bool { return report.Codes[i].Count > report.Codes[j].Count })
	sort.Slice(report.NoCode, func(i, j int) bool { return report.NoCode[i].Count > report.NoCode[j].Count })
	sort.Slice(report.Suggestions, func(i, j int) bool { return report.Suggestions[i].Count > report.Suggestions[j].Count })
	return report, nil
}

// Analyze runs the diagnostic pass against the configured raw sheet and
// persists the resulting suggestions for later review.
func (s *Service) Analyze() (internal.CodeReport, error) {
	loc, err := s.cfg.Location()
	if err != nil {
		return internal.CodeReport{}, err
	}

	wb, err := sheet.Open(s.cfg.WorkbookPath)
	if err != nil {
		return internal.CodeReport{}, err
	}
	defer wb.Close()

	raw, err := wb.ReadTable(s.cfg.RawSheet)
	if err != nil {
		return internal.CodeReport{}, err
	}

	report, err := Analyze(raw, s.tables, loc)
	if err != nil {
		return internal.CodeReport{}, err
	}

	if s.db != nil && len(report.Suggestions) > 0 {
		if err := s.db.UpsertSuggestions(report.Suggestions); err != nil {
			return report, err
		}
	}
	return report, nil
}
