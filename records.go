package folio

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// CommandType is a typed string for identifying journal record commands.
type CommandType string

// Command types used for identifying records.
const (
	CmdPortfolio   CommandType = "portfolio"
	CmdClass       CommandType = "class"
	CmdAsset       CommandType = "asset"
	CmdSetQuantity CommandType = "set-quantity"
	CmdSetTarget   CommandType = "set-target"
	CmdRemoveAsset CommandType = "remove-asset"
	CmdUpdatePrice CommandType = "update-price"
)

// Record defines the common interface for all journal records that can be
// appended to a portfolio Book.
type Record interface {
	What() CommandType // What returns the command type of the record.
	When() Date        // When returns the date on which the record was written.
	Note() string      // Note returns the optional memo of the record.
	Equal(Record) bool
	Validate(book *Book) (Record, error)
}

type baseRec struct {
	Command CommandType `json:"command"`        // Command specifies the type of record.
	Date    Date        `json:"date"`           // Date is the day the record applies to.
	Memo    string      `json:"memo,omitempty"` // Memo provides an optional rationale for the record.
}

func (r baseRec) What() CommandType { return r.Command }
func (r baseRec) When() Date        { return r.Date }
func (r baseRec) Note() string      { return r.Memo }

// MarshalJSON implements the json.Marshaler interface for baseRec.
func (r baseRec) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", r.Command)
	w.Append("date", r.Date)
	w.Optional("memo", r.Memo)
	return w.MarshalJSON()
}

// Validate checks the base record fields. It sets the date to today if it's
// zero. It's meant to be embedded in other record validation methods.
func (r *baseRec) Validate() {
	if r.Date == (Date{}) {
		r.Date = Today()
	}
}

// assetRec is a component for asset-based records (set-quantity, set-target,
// remove-asset).
type assetRec struct {
	baseRec
	Symbol Symbol `json:"symbol"` // Symbol identifies the asset involved in the record.
}

// Validate checks the asset record fields against the book state preceding
// this record.
func (r *assetRec) Validate(book *Book) error {
	r.baseRec.Validate()
	if r.Symbol == "" {
		return errors.New("asset symbol is missing")
	}
	if book.Asset(r.Symbol) == nil {
		return fmt.Errorf("asset %q not declared in portfolio", r.Symbol)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for assetRec.
func (r assetRec) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(r.baseRec)
	w.Append("symbol", r.Symbol)
	return w.MarshalJSON()
}

// DeclarePortfolio declares the portfolio itself, or updates its name,
// reporting currency, or fixed total value.
//
// The total value is a deliberate user decision, not the sum of the assets:
// classes derive their target value from it, and whatever assets do not
// cover shows up as cash.
type DeclarePortfolio struct {
	baseRec
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Value    Money  // Value is the fixed total value of the portfolio.
}

// NewDeclarePortfolio creates a new DeclarePortfolio record.
func NewDeclarePortfolio(day Date, memo, name, currency string, value Money) DeclarePortfolio {
	return DeclarePortfolio{
		baseRec:  baseRec{Command: CmdPortfolio, Date: day, Memo: memo},
		Name:     name,
		Currency: currency,
		Value:    value,
	}
}

func (r DeclarePortfolio) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(r.baseRec)
	w.Append("name", r.Name)
	w.Append("currency", r.Currency)
	w.Append("value", r.Value.value)
	return w.MarshalJSON()
}

func (r *DeclarePortfolio) UnmarshalJSON(data []byte) error {
	var temp struct {
		baseRec
		Name     string          `json:"name"`
		Currency string          `json:"currency"`
		Value    decimal.Decimal `json:"value"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	r.baseRec = temp.baseRec
	r.Name = temp.Name
	r.Currency = temp.Currency
	r.Value = M(temp.Value, temp.Currency)
	return nil
}

func (r DeclarePortfolio) Equal(other Record) bool {
	o, ok := other.(DeclarePortfolio)
	return ok && r.baseRec == o.baseRec && r.Name == o.Name && r.Currency == o.Currency && r.Value.Equal(o.Value)
}

func (r DeclarePortfolio) Validate(book *Book) (Record, error) {
	r.baseRec.Validate()
	if r.Name == "" {
		return r, errors.New("portfolio name is missing")
	}
	if r.Currency == "" {
		r.Currency = "USD"
	}
	if r.Value.IsNegative() {
		return r, fmt.Errorf("portfolio value must not be negative, got %s", r.Value)
	}
	// the value currency always follows the portfolio currency.
	r.Value = M(r.Value.value, r.Currency)
	return r, nil
}

// DeclareClass declares an asset class with its target share of the
// portfolio, or updates an existing class of the same name.
type DeclareClass struct {
	baseRec
	Name      string  `json:"name"`
	Target    Percent `json:"target"`              // Target is the class share of the portfolio total value.
	Threshold Percent `json:"threshold,omitempty"` // Threshold is the deviation tolerated before rebalancing alerts.
}

// NewDeclareClass creates a new DeclareClass record.
func NewDeclareClass(day Date, memo, name string, target, threshold Percent) DeclareClass {
	return DeclareClass{
		baseRec:   baseRec{Command: CmdClass, Date: day, Memo: memo},
		Name:      name,
		Target:    target,
		Threshold: threshold,
	}
}

func (r DeclareClass) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(r.baseRec)
	w.Append("name", r.Name)
	w.Append("target", r.Target)
	w.Optional("threshold", r.Threshold)
	return w.MarshalJSON()
}

func (r DeclareClass) Equal(other Record) bool {
	o, ok := other.(DeclareClass)
	return ok && r.baseRec == o.baseRec && r.Name == o.Name && r.Target.Equal(o.Target) && r.Threshold.Equal(o.Threshold)
}

func (r DeclareClass) Validate(book *Book) (Record, error) {
	r.baseRec.Validate()
	if r.Name == "" {
		return r, errors.New("class name is missing")
	}
	if r.Target < 0 || r.Target > 100 {
		return r, fmt.Errorf("class target must be within 0%% and 100%%, got %s", r.Target)
	}
	if r.Threshold < 0 || r.Threshold > 100 {
		return r, fmt.Errorf("class threshold must be within 0%% and 100%%, got %s", r.Threshold)
	}
	if r.Threshold == 0 {
		r.Threshold = DefaultThreshold
	}
	// A new target must leave the total class allocation within 100%.
	total := r.Target
	for _, c := range book.Classes() {
		if c.Name != r.Name {
			total += c.Target
		}
	}
	if total > 100+0.0001 {
		return r, fmt.Errorf("class targets would sum to %s, more than 100%%", total)
	}
	return r, nil
}

// DeclareAsset declares an asset and assigns it to a class.
type DeclareAsset struct {
	baseRec
	Symbol Symbol `json:"symbol"`
	Name   string `json:"name,omitempty"`
	Class  string `json:"class"`
}

// NewDeclareAsset creates a new DeclareAsset record.
func NewDeclareAsset(day Date, memo string, symbol Symbol, name, class string) DeclareAsset {
	return DeclareAsset{
		baseRec: baseRec{Command: CmdAsset, Date: day, Memo: memo},
		Symbol:  symbol,
		Name:    name,
		Class:   class,
	}
}

func (r DeclareAsset) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(r.baseRec)
	w.Append("symbol", r.Symbol)
	w.Optional("name", r.Name)
	w.Append("class", r.Class)
	return w.MarshalJSON()
}

func (r DeclareAsset) Equal(other Record) bool {
	o, ok := other.(DeclareAsset)
	return ok && r.baseRec == o.baseRec && r.Symbol == o.Symbol && r.Name == o.Name && r.Class == o.Class
}

func (r DeclareAsset) Validate(book *Book) (Record, error) {
	r.baseRec.Validate()
	sym, err := ParseSymbol(string(r.Symbol))
	if err != nil {
		return r, err
	}
	r.Symbol = sym
	if r.Name == "" {
		r.Name = string(r.Symbol)
	}
	if r.Class == "" {
		return r, errors.New("asset class is missing")
	}
	if book.Class(r.Class) == nil {
		return r, fmt.Errorf("class %q not declared in portfolio", r.Class)
	}
	if a := book.Asset(r.Symbol); a != nil && a.Class != r.Class {
		return r, fmt.Errorf("asset %q already declared in class %q", r.Symbol, a.Class)
	}
	return r, nil
}

// SetQuantity sets the held quantity of an asset.
type SetQuantity struct {
	assetRec
	Quantity Quantity `json:"quantity"`
}

// NewSetQuantity creates a new SetQuantity record.
func NewSetQuantity(day Date, memo string, symbol Symbol, quantity Quantity) SetQuantity {
	return SetQuantity{
		assetRec: assetRec{baseRec: baseRec{Command: CmdSetQuantity, Date: day, Memo: memo}, Symbol: symbol},
		Quantity: quantity,
	}
}

func (r SetQuantity) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(r.assetRec)
	w.Append("quantity", r.Quantity)
	return w.MarshalJSON()
}

func (r SetQuantity) Equal(other Record) bool {
	o, ok := other.(SetQuantity)
	return ok && r.assetRec == o.assetRec && r.Quantity.Equal(o.Quantity)
}

func (r SetQuantity) Validate(book *Book) (Record, error) {
	if err := r.assetRec.Validate(book); err != nil {
		return r, err
	}
	if r.Quantity.IsNegative() {
		return r, fmt.Errorf("quantity must not be negative, got %s", r.Quantity)
	}
	return r, nil
}

// SetTarget sets the target share of an asset within its class, and
// optionally its rebalance threshold.
type SetTarget struct {
	assetRec
	Target    Percent `json:"target"`
	Threshold Percent `json:"threshold,omitempty"`
}

// NewSetTarget creates a new SetTarget record.
func NewSetTarget(day Date, memo string, symbol Symbol, target, threshold Percent) SetTarget {
	return SetTarget{
		assetRec:  assetRec{baseRec: baseRec{Command: CmdSetTarget, Date: day, Memo: memo}, Symbol: symbol},
		Target:    target,
		Threshold: threshold,
	}
}

func (r SetTarget) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(r.assetRec)
	w.Append("target", r.Target)
	w.Optional("threshold", r.Threshold)
	return w.MarshalJSON()
}

func (r SetTarget) Equal(other Record) bool {
	o, ok := other.(SetTarget)
	return ok && r.assetRec == o.assetRec && r.Target.Equal(o.Target) && r.Threshold.Equal(o.Threshold)
}

func (r SetTarget) Validate(book *Book) (Record, error) {
	if err := r.assetRec.Validate(book); err != nil {
		return r, err
	}
	if r.Target < 0 || r.Target > 100 {
		return r, fmt.Errorf("asset target must be within 0%% and 100%%, got %s", r.Target)
	}
	if r.Threshold < 0 || r.Threshold > 100 {
		return r, fmt.Errorf("asset threshold must be within 0%% and 100%%, got %s", r.Threshold)
	}
	if r.Threshold == 0 {
		r.Threshold = DefaultThreshold
	}
	return r, nil
}

// RemoveAsset removes an asset from the portfolio. Earlier records about
// the asset stay in the journal and are ignored on replay.
type RemoveAsset struct {
	assetRec
}

// NewRemoveAsset creates a new RemoveAsset record.
func NewRemoveAsset(day Date, memo string, symbol Symbol) RemoveAsset {
	return RemoveAsset{
		assetRec: assetRec{baseRec: baseRec{Command: CmdRemoveAsset, Date: day, Memo: memo}, Symbol: symbol},
	}
}

func (r RemoveAsset) Equal(other Record) bool {
	o, ok := other.(RemoveAsset)
	return ok && r.assetRec == o.assetRec
}

func (r RemoveAsset) Validate(book *Book) (Record, error) {
	if err := r.assetRec.Validate(book); err != nil {
		return r, err
	}
	return r, nil
}

// UpdatePrice records daily prices for one or more symbols. Appending a
// second update-price for the same day merges the two (see
// Book.AppendOrUpdate).
type UpdatePrice struct {
	baseRec
	Prices  map[Symbol]decimal.Decimal `json:"prices"`
	Sources map[Symbol]string          `json:"sources,omitempty"` // providers that contributed each price
}

// NewUpdatePrice creates an UpdatePrice record for a single symbol.
func NewUpdatePrice(day Date, symbol Symbol, price decimal.Decimal, source string) UpdatePrice {
	r := UpdatePrice{
		baseRec: baseRec{Command: CmdUpdatePrice, Date: day},
		Prices:  map[Symbol]decimal.Decimal{symbol: price},
	}
	if source != "" {
		r.Sources = map[Symbol]string{symbol: source}
	}
	return r
}

func (r UpdatePrice) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(r.baseRec)
	w.Append("prices", r.Prices)
	if len(r.Sources) > 0 {
		w.Append("sources", r.Sources)
	}
	return w.MarshalJSON()
}

// Symbols returns the symbols priced by the record, sorted.
func (r UpdatePrice) Symbols() []Symbol {
	syms := slices.Collect(maps.Keys(r.Prices))
	slices.Sort(syms)
	return syms
}

func (r UpdatePrice) Equal(other Record) bool {
	o, ok := other.(UpdatePrice)
	if !ok || r.baseRec != o.baseRec || len(r.Prices) != len(o.Prices) {
		return false
	}
	for sym, p := range r.Prices {
		op, exists := o.Prices[sym]
		if !exists || !p.Equal(op) {
			return false
		}
	}
	return maps.Equal(r.Sources, o.Sources)
}

func (r UpdatePrice) Validate(book *Book) (Record, error) {
	r.baseRec.Validate()
	if len(r.Prices) == 0 {
		return r, errors.New("update-price record has no prices")
	}
	for sym, p := range r.Prices {
		if !p.IsPositive() {
			return r, fmt.Errorf("price for %q must be positive, got %s", sym, p)
		}
	}
	return r, nil
}

// DefaultThreshold is the rebalance threshold applied when a class or
// asset does not set one.
const DefaultThreshold Percent = 5
