package pipeline

import (
	"strings"
	"time"

	"shopclean/internal"
	"shopclean/internal/util"
)

// ParseItem splits a raw item cell of the form
// "<product name ...> <price> <quantity>" from the right: the last token is
// the quantity, the one before it the price, everything else the name.
// Tokens are passed through as text; no numeric validation happens here.
func ParseItem(raw string) internal.ItemFields {
	collapsed := util.CollapseSpaces(raw)
	parts := strings.Split(collapsed, " ")

	quantity := "1"
	if len(parts) >= 1 && parts[len(parts)-1] != "" {
		quantity = parts[len(parts)-1]
	}
	price := "0.00"
	if len(parts) >= 2 {
		price = parts[len(parts)-2]
	}

	name := ""
	if len(parts) > 2 {
		name = strings.Join(parts[:len(parts)-2], " ")
	}
	if name == "" {
		name = collapsed
	}

	return internal.ItemFields{ProductName: name, Price: price, Quantity: quantity}
}

// ParseAddress splits "City tokens... Province Country". Anything shorter
// than three tokens lands whole in the city field.
func ParseAddress(raw string) internal.Address {
	collapsed := util.CollapseSpaces(raw)
	parts := strings.Split(collapsed, " ")

	if len(parts) >= 3 {
		return internal.Address{
			City:     strings.Join(parts[:len(parts)-2], " "),
			Province: parts[len(parts)-2],
			Country:  parts[len(parts)-1],
		}
	}
	return internal.Address{City: collapsed}
}

// ParseDiscount splits "amount [type...]".
func ParseDiscount(raw string) internal.Discount {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return internal.Discount{}
	}
	parts := strings.Split(trimmed, " ")
	return internal.Discount{
		Amount: parts[0],
		Type:   strings.Join(parts[1:], " "),
	}
}

func CleanCustomerName(raw string) string {
	return util.CollapseSpaces(raw)
}

// CleanCurrency keeps the cell as display text; currency prefixes stay.
func CleanCurrency(raw string) string {
	return strings.TrimSpace(raw)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01-02-06 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// CleanDate normalizes a date cell to "YYYY-MM-DD HH:MM:SS" in the given
// zone. Unparseable text passes through unchanged; empty stays empty.
func CleanDate(raw string, loc *time.Location) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, trimmed, loc); err == nil {
			return parsed.In(loc).Format("2006-01-02 15:04:05")
		}
	}
	return trimmed
}
