package folio

import (
	"fmt"
	"iter"
	"slices"

	"github.com/shopspring/decimal"
)

// Book is the journal of a single portfolio: an ordered list of records,
// replayed into the current state.
//
// Records are kept sorted by date, in a stable way (preserving insertion
// order within a day), so that the journal file stays mergeable and diffs
// stay readable.
type Book struct {
	recs  []Record
	state *state
}

// state is the result of replaying the journal.
type state struct {
	portfolio Portfolio
	classes   []*Class
	assets    []*Asset
}

// Portfolio holds the portfolio-level declarations.
type Portfolio struct {
	Name     string
	Currency string
	Value    Money // fixed total value, as decided by the user
}

// Class is an asset class and its target share of the portfolio.
type Class struct {
	Name      string
	Target    Percent
	Threshold Percent
}

// Asset is the replayed state of one declared asset.
type Asset struct {
	Symbol    Symbol
	Name      string
	Class     string
	Quantity  Quantity
	Target    Percent // share of the class, not of the portfolio
	Threshold Percent
	Price     decimal.Decimal
	PriceDay  Date
	Source    string
}

// Value returns the market value of the position in the given currency.
func (a *Asset) Value(currency string) Money {
	return M(a.Price, currency).Mul(a.Quantity)
}

// NewBook creates an empty Book.
func NewBook() *Book { return &Book{} }

// Portfolio returns the replayed portfolio declaration.
func (b *Book) Portfolio() Portfolio { return b.replay().portfolio }

// Currency returns the portfolio reporting currency, defaulting to USD for
// an undeclared book.
func (b *Book) Currency() string {
	if cur := b.replay().portfolio.Currency; cur != "" {
		return cur
	}
	return "USD"
}

// Classes returns the declared classes in declaration order.
func (b *Book) Classes() []*Class { return b.replay().classes }

// Class returns the class with the given name, or nil.
func (b *Book) Class(name string) *Class {
	for _, c := range b.replay().classes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Assets returns the declared assets in declaration order.
func (b *Book) Assets() []*Asset { return b.replay().assets }

// Asset returns the asset with the given symbol, or nil.
func (b *Book) Asset(symbol Symbol) *Asset {
	for _, a := range b.replay().assets {
		if a.Symbol == symbol {
			return a
		}
	}
	return nil
}

// ClassAssets returns the assets assigned to the given class, in
// declaration order.
func (b *Book) ClassAssets(class string) []*Asset {
	var out []*Asset
	for _, a := range b.replay().assets {
		if a.Class == class {
			out = append(out, a)
		}
	}
	return out
}

// Records iterates over all records in the book, in journal order.
func (b *Book) Records() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, r := range b.recs {
			if !yield(r) {
				return
			}
		}
	}
}

// Len returns the number of records in the book.
func (b *Book) Len() int { return len(b.recs) }

// Append validates each record against the book state and appends it.
// On error the book is left unchanged.
func (b *Book) Append(recs ...Record) error {
	for _, r := range recs {
		valid, err := r.Validate(b)
		if err != nil {
			return err
		}
		b.recs = append(b.recs, valid)
		b.stableSort()
		b.state = nil
	}
	return nil
}

// AppendOrUpdate appends an UpdatePrice record, merging it with an existing
// update-price for the same day if there is one. The newer prices win on
// symbol collision.
func (b *Book) AppendOrUpdate(rec UpdatePrice) error {
	valid, err := rec.Validate(b)
	if err != nil {
		return err
	}
	rec = valid.(UpdatePrice)
	for i := len(b.recs) - 1; i >= 0; i-- {
		prev, ok := b.recs[i].(UpdatePrice)
		if !ok || prev.Date != rec.Date {
			continue
		}
		merged := UpdatePrice{
			baseRec: prev.baseRec,
			Prices:  make(map[Symbol]decimal.Decimal, len(prev.Prices)+len(rec.Prices)),
			Sources: make(map[Symbol]string, len(prev.Sources)+len(rec.Sources)),
		}
		for sym, p := range prev.Prices {
			merged.Prices[sym] = p
		}
		for sym, src := range prev.Sources {
			merged.Sources[sym] = src
		}
		for sym, p := range rec.Prices {
			merged.Prices[sym] = p
		}
		for sym, src := range rec.Sources {
			merged.Sources[sym] = src
		}
		b.recs[i] = merged
		b.state = nil
		return nil
	}
	b.recs = append(b.recs, rec)
	b.stableSort()
	b.state = nil
	return nil
}

// stableSort sorts records by date only, keeping insertion order within a
// day.
func (b *Book) stableSort() {
	slices.SortStableFunc(b.recs, func(x, y Record) int {
		return x.When().Compare(y.When())
	})
}

// replay rebuilds the state from the journal, caching the result until the
// next mutation.
func (b *Book) replay() *state {
	if b.state != nil {
		return b.state
	}
	s := &state{}
	for _, r := range b.recs {
		s.apply(r)
	}
	b.state = s
	return s
}

func (s *state) apply(r Record) {
	switch rec := r.(type) {
	case DeclarePortfolio:
		s.portfolio = Portfolio{Name: rec.Name, Currency: rec.Currency, Value: rec.Value}
	case DeclareClass:
		for _, c := range s.classes {
			if c.Name == rec.Name {
				c.Target, c.Threshold = rec.Target, rec.Threshold
				return
			}
		}
		s.classes = append(s.classes, &Class{Name: rec.Name, Target: rec.Target, Threshold: rec.Threshold})
	case DeclareAsset:
		for _, a := range s.assets {
			if a.Symbol == rec.Symbol {
				a.Name, a.Class = rec.Name, rec.Class
				return
			}
		}
		s.assets = append(s.assets, &Asset{Symbol: rec.Symbol, Name: rec.Name, Class: rec.Class, Threshold: DefaultThreshold})
	case SetQuantity:
		if a := s.asset(rec.Symbol); a != nil {
			a.Quantity = rec.Quantity
		}
	case SetTarget:
		if a := s.asset(rec.Symbol); a != nil {
			a.Target, a.Threshold = rec.Target, rec.Threshold
		}
	case RemoveAsset:
		s.assets = slices.DeleteFunc(s.assets, func(a *Asset) bool { return a.Symbol == rec.Symbol })
	case UpdatePrice:
		for sym, p := range rec.Prices {
			a := s.asset(sym)
			if a == nil {
				continue // price for a later-removed asset
			}
			if rec.Date.Before(a.PriceDay) {
				continue
			}
			a.Price, a.PriceDay = p, rec.Date
			a.Source = rec.Sources[sym]
		}
	}
}

func (s *state) asset(symbol Symbol) *Asset {
	for _, a := range s.assets {
		if a.Symbol == symbol {
			return a
		}
	}
	return nil
}

// Validate replays the whole journal, validating every record against the
// state preceding it. It reports the first invalid record.
func (b *Book) Validate() error {
	check := NewBook()
	for i, r := range b.recs {
		if err := check.Append(r); err != nil {
			return fmt.Errorf("record %d (%s on %s): %w", i+1, r.What(), r.When(), err)
		}
	}
	return nil
}
