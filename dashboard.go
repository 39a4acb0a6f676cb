package folio

import "math"

// Status grades how far a position has drifted from its target.
type Status string

const (
	StatusOK       Status = "ok"
	StatusAlert    Status = "alert"
	StatusCritical Status = "critical"
	StatusSevere   Status = "severe"
	StatusNoPrice  Status = "no-price" // the asset has no recorded price
)

// statusOf grades an absolute deviation against a threshold. Each grade
// widens the previous band by 20%.
func statusOf(deviation, threshold Percent) Status {
	dev := deviation.Abs()
	switch {
	case dev < threshold:
		return StatusOK
	case dev < threshold*1.2:
		return StatusAlert
	case dev < threshold*1.44:
		return StatusCritical
	default:
		return StatusSevere
	}
}

// Class allocation grades relative to the class target value.
const (
	ClassUnder = "under" // allocated below 90% of the class target value
	ClassOver  = "over"  // allocated above 110% of the class target value
	ClassOK    = "ok"
)

// Dashboard is the rebalancing view of a portfolio on a given day. All
// amounts are in the portfolio currency.
type Dashboard struct {
	Name         string      `json:"name"`
	Currency     string      `json:"currency"`
	Total        Money       `json:"total"`          // the fixed total value declared by the user
	Allocated    Money       `json:"allocated"`      // sum of all asset values
	LastPriceDay Date        `json:"last_price_day"` // most recent price day across assets
	Unallocated  Percent     `json:"unallocated"`    // share of the total not covered by class targets
	Classes      []ClassView `json:"classes"`
	Alerts       []Alert     `json:"alerts,omitempty"`
}

// ClassView is the rebalancing view of one asset class.
type ClassView struct {
	Name        string      `json:"name"`
	Target      Percent     `json:"target"`
	TargetValue Money       `json:"target_value"` // target share of the portfolio total
	Allocated   Money       `json:"allocated"`    // sum of the class asset values
	Cash        Money       `json:"cash"`         // target value not yet covered by assets
	Current     Percent     `json:"current"`      // allocated share of the portfolio total
	Deviation   Percent     `json:"deviation"`    // current minus target
	Status      string      `json:"status"`
	Assets      []AssetView `json:"assets"`
}

// AssetView is the rebalancing view of one position.
type AssetView struct {
	Symbol   Symbol   `json:"symbol"`
	Name     string   `json:"name"`
	Quantity Quantity `json:"quantity"`
	Price    Money    `json:"price"`
	PriceDay Date     `json:"price_day"`
	Source   string   `json:"source,omitempty"`
	Value    Money    `json:"value"`

	Current          Percent `json:"current"`            // share of the class target value
	Target           Percent `json:"target"`             // target share of the class
	Deviation        Percent `json:"deviation"`          // current minus target, within the class
	CurrentOfTotal   Percent `json:"current_of_total"`   // share of the portfolio total
	TargetOfTotal    Percent `json:"target_of_total"`    // class target scaled by the asset target
	DeviationOfTotal Percent `json:"deviation_of_total"` // drift against the whole portfolio

	Threshold  Percent  `json:"threshold"`
	Status     Status   `json:"status"`
	ValueToBuy Money    `json:"value_to_buy"` // negative means sell
	UnitsToBuy Quantity `json:"units_to_buy"`
}

// Alert flags a position or class that needs rebalancing attention.
type Alert struct {
	Class  string  `json:"class"`
	Symbol Symbol  `json:"symbol,omitempty"` // empty for class-level alerts
	Status Status  `json:"status"`
	Delta  Percent `json:"delta"`
}

// NewDashboard computes the rebalancing dashboard from the book state.
//
// Class target values derive from the user-declared total, not from market
// prices: the dashboard answers "how far is each position from the plan",
// and the plan is the declared total split by the class targets.
func NewDashboard(book *Book) *Dashboard {
	p := book.Portfolio()
	cur := book.Currency()
	d := &Dashboard{
		Name:     p.Name,
		Currency: cur,
		Total:    p.Value,
	}

	var classTargets Percent
	allocated := M(0, cur)
	for _, class := range book.Classes() {
		classTargets += class.Target
		cv := ClassView{
			Name:        class.Name,
			Target:      class.Target,
			TargetValue: p.Value.MulPercent(class.Target),
		}
		classAllocated := M(0, cur)
		for _, asset := range book.ClassAssets(class.Name) {
			av := newAssetView(asset, cur, p.Value, cv.TargetValue, class.Target)
			classAllocated = classAllocated.Add(av.Value)
			cv.Assets = append(cv.Assets, av)
			if !asset.Price.IsPositive() {
				d.Alerts = append(d.Alerts, Alert{Class: class.Name, Symbol: asset.Symbol, Status: StatusNoPrice, Delta: av.Deviation})
			} else if av.Status != StatusOK {
				d.Alerts = append(d.Alerts, Alert{Class: class.Name, Symbol: asset.Symbol, Status: av.Status, Delta: av.Deviation})
			}
			if asset.PriceDay.After(d.LastPriceDay) {
				d.LastPriceDay = asset.PriceDay
			}
		}
		cv.Allocated = classAllocated
		cv.Cash = cv.TargetValue.Sub(classAllocated)
		if cv.Cash.IsNegative() {
			cv.Cash = M(0, cur)
		}
		cv.Current = classAllocated.PercentOf(p.Value)
		cv.Deviation = cv.Current - cv.Target
		cv.Status = classStatus(classAllocated, cv.TargetValue)
		if cv.Status != ClassOK {
			d.Alerts = append(d.Alerts, Alert{Class: class.Name, Status: StatusAlert, Delta: classAllocated.PercentOf(cv.TargetValue) - 100})
		}
		allocated = allocated.Add(classAllocated)
		d.Classes = append(d.Classes, cv)
	}
	d.Allocated = allocated
	if classTargets < 100 {
		d.Unallocated = 100 - classTargets
	}
	return d
}

func newAssetView(asset *Asset, currency string, total, classTarget Money, classShare Percent) AssetView {
	av := AssetView{
		Symbol:     asset.Symbol,
		Name:       asset.Name,
		Quantity:   asset.Quantity,
		Price:      M(asset.Price, currency),
		PriceDay:   asset.PriceDay,
		Source:     asset.Source,
		Value:      asset.Value(currency),
		Target:     asset.Target,
		Threshold:  asset.Threshold,
		ValueToBuy: M(0, currency),
	}
	av.Current = av.Value.PercentOf(classTarget)
	av.Deviation = av.Current - av.Target
	av.CurrentOfTotal = av.Value.PercentOf(total)
	if classShare > 0 {
		av.TargetOfTotal = classShare * av.Target / 100
		av.DeviationOfTotal = av.CurrentOfTotal - av.TargetOfTotal
	}
	av.Status = statusOf(av.Deviation, av.Threshold)
	if asset.Price.IsPositive() {
		av.ValueToBuy = classTarget.MulPercent(av.Target).Sub(av.Value)
		av.UnitsToBuy = av.ValueToBuy.DivPrice(M(asset.Price, currency))
	}
	return av
}

// classStatus grades the class allocation against its target value. A class
// within 90% and 110% of its target value is considered balanced.
func classStatus(allocated, target Money) string {
	if target.IsZero() {
		if allocated.IsZero() {
			return ClassOK
		}
		return ClassOver
	}
	ratio := float64(allocated.PercentOf(target))
	switch {
	case ratio < 90:
		return ClassUnder
	case ratio > 110:
		return ClassOver
	default:
		return ClassOK
	}
}

// Rounded truncation guard for chart series: shares are clamped so tiny
// negative float artifacts never reach the renderer.
func clampShare(v float64) float64 { return math.Max(0, v) }

// Series returns for each class its allocated share of the portfolio total,
// in class order, with any remainder as trailing cash. It feeds the
// allocation chart in the rendered dashboard.
func (d *Dashboard) Series() (labels []string, shares []float64) {
	total := d.Total.AsFloat()
	if total <= 0 {
		return nil, nil
	}
	var covered float64
	for _, c := range d.Classes {
		share := clampShare(c.Allocated.AsFloat() / total * 100)
		labels = append(labels, c.Name)
		shares = append(shares, share)
		covered += share
	}
	if cash := clampShare(100 - covered); cash > 0.01 {
		labels = append(labels, "cash")
		shares = append(shares, cash)
	}
	return labels, shares
}
