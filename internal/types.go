package internal

type Verdict string

const (
	VerdictValid     Verdict = "VALID"
	VerdictTest      Verdict = "TEST"
	VerdictZero      Verdict = "ZERO"
	VerdictDuplicate Verdict = "DUPLICATE"
)

type ResolveOutcome string

const (
	ResolvedByCode   ResolveOutcome = "CODE"
	ResolvedByName   ResolveOutcome = "NAME"
	ResolvedExcluded ResolveOutcome = "EXCLUDED"
	ResolvedUnmapped ResolveOutcome = "UNMAPPED"
)

// NoCode marks line items whose raw row carried no product code.
const NoCode = "NO_CODE"

type Resolution struct {
	Code    string
	Name    string
	Outcome ResolveOutcome
}

type Address struct {
	City     string
	Province string
	Country  string
}

type Discount struct {
	Amount string
	Type   string
}

type ItemFields struct {
	ProductName string
	Price       string
	Quantity    string
}

// OrderContext is built once per valid order header row and never mutated.
// Continuation rows inherit it until the next header row replaces or clears it.
type OrderContext struct {
	ID           string
	CustomerName string
	Address      Address
	Total        string
	Date         string
	Email        string
	Subtotal     string
	Discount     Discount
}

type LineItem struct {
	OrderID      string
	ProductCode  string
	ProductName  string
	ProductPrice string
	Quantity     string
	CustomerName string
	City         string
	Province     string
	Country      string
	OrderTotal   string
	OrderDate    string
	Email        string
	Subtotal     string
	DiscountAmt  string
	DiscountType string
}

type RunStats struct {
	Duplicates   int `json:"duplicates"`
	TestOrders   int `json:"testOrders"`
	ZeroOrders   int `json:"zeroOrders"`
	EmptyRows    int `json:"emptyRows"`
	MappedByCode int `json:"mappedByCode"`
	MappedByName int `json:"mappedByName"`
	Excluded     int `json:"excluded"`
	Unmapped     int `json:"unmapped"`
	Orders       int `json:"orders"`
	Processed    int `json:"processed"`
}

type RunRecord struct {
	ID        int
	TraceID   string
	Stats     RunStats
	CreatedAt string
}

type CodeUsage struct {
	Code      string
	Count     int
	Mapped    bool
	FirstName string
}

type NameGroup struct {
	Name  string
	Count int
}

type Suggestion struct {
	Code  string
	Name  string
	Count int
}

type CodeReport struct {
	Codes       []CodeUsage
	NoCode      []NameGroup
	Suggestions []Suggestion
	Stats       RunStats
}
