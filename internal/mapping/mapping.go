package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"shopclean/internal/util"
)

// excludeMarker is the value an item_names entry carries when matching
// items must be dropped from the cleaned output (fees, samples, shipping
// adjustments).
const excludeMarker = "EXCLUDE"

// Tables holds the static mapping configuration loaded once per process.
// The pipeline receives it by value and never mutates it.
type Tables struct {
	TestEmails        []string          `yaml:"test_emails"`
	TestCustomerNames []string          `yaml:"test_customer_names"`
	ProductCodes      map[string]string `yaml:"product_codes"`
	ItemNames         map[string]string `yaml:"item_names"`
}

func Load(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("read mappings file: %w", err)
	}

	var tables Tables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return Tables{}, fmt.Errorf("parse mappings file %s: %w", path, err)
	}
	return tables, nil
}

// IsTestOrder reports whether the order belongs to a known test identity.
// Both checks are case-insensitive substring matches.
func (t Tables) IsTestOrder(email, customerName string) bool {
	for _, fragment := range t.TestEmails {
		if fragment != "" && util.ContainsFold(email, fragment) {
			return true
		}
	}
	for _, fragment := range t.TestCustomerNames {
		if fragment != "" && util.ContainsFold(customerName, fragment) {
			return true
		}
	}
	return false
}
