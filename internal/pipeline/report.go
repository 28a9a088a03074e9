package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"shopclean/internal"
)

// Summary renders the post-run counts block shown to the operator.
func Summary(stats internal.RunStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "cleaning complete: %d line items from %d orders\n", stats.Processed, stats.Orders)
	fmt.Fprintf(&b, "removed: duplicates=%d test=%d zero=%d empty=%d excluded=%d\n",
		stats.Duplicates, stats.TestOrders, stats.ZeroOrders, stats.EmptyRows, stats.Excluded)
	fmt.Fprintf(&b, "mapping: by-code=%d by-name=%d unmapped=%d",
		stats.MappedByCode, stats.MappedByName, stats.Unmapped)
	return b.String()
}

// RenderReport formats the analyze output as operator-readable tables.
func RenderReport(report internal.CodeReport) string {
	var b strings.Builder

	b.WriteString(Summary(report.Stats))
	b.WriteString("\n")

	if len(report.Codes) > 0 {
		b.WriteString("\nproduct codes:\n")
		t := tablewriter.NewWriter(&b)
		t.SetHeader([]string{"Code", "Count", "Mapped", "First Seen As"})
		for _, usage := range report.Codes {
			mapped := "no"
			if usage.Mapped {
				mapped = "yes"
			}
			t.Append([]string{usage.Code, strconv.Itoa(usage.Count), mapped, usage.FirstName})
		}
		t.Render()
	}

	if len(report.NoCode) > 0 {
		b.WriteString("\nitems without a product code:\n")
		t := tablewriter.NewWriter(&b)
		t.SetHeader([]string{"Parsed Name", "Count"})
		for _, group := range report.NoCode {
			t.Append([]string{group.Name, strconv.Itoa(group.Count)})
		}
		t.Render()
	}

	if len(report.Suggestions) > 0 {
		b.WriteString("\nsuggested product_codes entries:\n")
		t := tablewriter.NewWriter(&b)
		t.SetHeader([]string{"Code", "Suggested Name", "Count"})
		for _, s := range report.Suggestions {
			t.Append([]string{s.Code, s.Name, strconv.Itoa(s.Count)})
		}
		t.Render()
	}

	return b.String()
}
