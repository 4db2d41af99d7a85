package ledger

import "fmt"

// Category represents the cash flow category for financial reporting
type Category string

const (
	// CategorySales is income from sold bikes
	CategorySales Category = "sales"

	// CategoryLiquidation is the write-down of cleared competitor stock
	CategoryLiquidation Category = "liquidation"
)

// AllCategories returns all valid categories
func AllCategories() []Category {
	return []Category{CategorySales, CategoryLiquidation}
}

// String returns the string representation of the Category
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategorySales, CategoryLiquidation:
		return true
	default:
		return false
	}
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
