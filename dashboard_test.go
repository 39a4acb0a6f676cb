package folio

import (
	"math"
	"testing"
)

func TestNewDashboard(t *testing.T) {
	d := NewDashboard(demoBook())

	if !d.Total.Equal(USD(100000)) {
		t.Errorf("total = %s, want $100,000.00", d.Total)
	}
	if !d.Allocated.Equal(USD(55000)) {
		t.Errorf("allocated = %s, want $55,000.00", d.Allocated)
	}
	// declared class targets are 60 + 20.
	if !d.Unallocated.Equal(20) {
		t.Errorf("unallocated = %s, want 20%%", d.Unallocated)
	}
	if len(d.Classes) != 2 {
		t.Fatalf("classes = %d, want 2", len(d.Classes))
	}
	if d.LastPriceDay != NewDate(2025, 6, 1) {
		t.Errorf("last price day = %s, want 2025-06-01", d.LastPriceDay)
	}

	stocks := d.Classes[0]
	if !stocks.TargetValue.Equal(USD(60000)) {
		t.Errorf("stocks target value = %s, want $60,000.00", stocks.TargetValue)
	}
	if !stocks.Allocated.Equal(USD(40000)) {
		t.Errorf("stocks allocated = %s, want $40,000.00", stocks.Allocated)
	}
	if !stocks.Cash.Equal(USD(20000)) {
		t.Errorf("stocks cash = %s, want $20,000.00", stocks.Cash)
	}
	// 40k of the 100k total.
	if !stocks.Current.Equal(40) {
		t.Errorf("stocks current = %s, want 40%%", stocks.Current)
	}
	if !stocks.Deviation.Equal(-20) {
		t.Errorf("stocks deviation = %s, want -20%%", stocks.Deviation)
	}
	// 40k of 60k is 66%, below the 90% band.
	if stocks.Status != ClassUnder {
		t.Errorf("stocks status = %q, want %q", stocks.Status, ClassUnder)
	}
}

func TestDashboardAssetView(t *testing.T) {
	d := NewDashboard(demoBook())
	stocks := d.Classes[0]
	if len(stocks.Assets) != 2 {
		t.Fatalf("stocks assets = %d, want 2", len(stocks.Assets))
	}
	aapl := stocks.Assets[0]
	if aapl.Symbol != "AAPL" {
		t.Fatalf("first stocks asset = %s, want AAPL", aapl.Symbol)
	}
	if !aapl.Value.Equal(USD(20000)) {
		t.Errorf("AAPL value = %s, want $20,000.00", aapl.Value)
	}
	// 20k of the 60k class target value.
	if math.Abs(float64(aapl.Current)-33.33) > 0.01 {
		t.Errorf("AAPL current = %s, want 33.33%%", aapl.Current)
	}
	if math.Abs(float64(aapl.Deviation)-(-16.67)) > 0.01 {
		t.Errorf("AAPL deviation = %s, want -16.67%%", aapl.Deviation)
	}
	// 16.67 points off with a 5 point threshold.
	if aapl.Status != StatusSevere {
		t.Errorf("AAPL status = %q, want %q", aapl.Status, StatusSevere)
	}
	// 20k of the 100k portfolio total.
	if !aapl.CurrentOfTotal.Equal(20) {
		t.Errorf("AAPL current of total = %s, want 20%%", aapl.CurrentOfTotal)
	}
	// 50% of the 60% class target.
	if !aapl.TargetOfTotal.Equal(30) {
		t.Errorf("AAPL target of total = %s, want 30%%", aapl.TargetOfTotal)
	}
	if !aapl.DeviationOfTotal.Equal(-10) {
		t.Errorf("AAPL deviation of total = %s, want -10%%", aapl.DeviationOfTotal)
	}
	// target slice is 50% of 60k = 30k, holding 20k at $200.
	if !aapl.ValueToBuy.Equal(USD(10000)) {
		t.Errorf("AAPL value to buy = %s, want $10,000.00", aapl.ValueToBuy)
	}
	if !aapl.UnitsToBuy.Equal(Q(50)) {
		t.Errorf("AAPL units to buy = %s, want 50", aapl.UnitsToBuy)
	}
}

func TestDashboardBalanced(t *testing.T) {
	b := NewBook()
	day := NewDate(2025, 6, 1)
	recs := []Record{
		NewDeclarePortfolio(day, "", "p", "USD", USD(10000)),
		NewDeclareClass(day, "", "stocks", 100, 5),
		NewDeclareAsset(day, "", "VTI", "", "stocks"),
		NewSetTarget(day, "", "VTI", 100, 5),
		NewSetQuantity(day, "", "VTI", Q(100)),
	}
	for _, r := range recs {
		if err := b.Append(r); err != nil {
			t.Fatal(err)
		}
	}
	if err := b.AppendOrUpdate(NewUpdatePrice(day, "VTI", newDecimal(100.0), "")); err != nil {
		t.Fatal(err)
	}

	d := NewDashboard(b)
	if len(d.Alerts) != 0 {
		t.Fatalf("alerts = %v, want none for a balanced portfolio", d.Alerts)
	}
	stocks := d.Classes[0]
	if stocks.Status != ClassOK {
		t.Errorf("stocks status = %q, want ok", stocks.Status)
	}
	if !stocks.Cash.IsZero() {
		t.Errorf("stocks cash = %s, want zero", stocks.Cash)
	}
	vti := stocks.Assets[0]
	if vti.Status != StatusOK {
		t.Errorf("VTI status = %q, want ok", vti.Status)
	}
	if !vti.UnitsToBuy.IsZero() {
		t.Errorf("VTI units to buy = %s, want 0", vti.UnitsToBuy)
	}
	if !d.Unallocated.Equal(0) {
		t.Errorf("unallocated = %s, want 0%%", d.Unallocated)
	}
}

func TestDashboardNoPriceAlert(t *testing.T) {
	b := NewBook()
	day := NewDate(2025, 6, 1)
	recs := []Record{
		NewDeclarePortfolio(day, "", "p", "USD", USD(10000)),
		NewDeclareClass(day, "", "stocks", 100, 5),
		NewDeclareAsset(day, "", "VTI", "", "stocks"),
		NewSetTarget(day, "", "VTI", 100, 5),
		NewSetQuantity(day, "", "VTI", Q(100)),
	}
	for _, r := range recs {
		if err := b.Append(r); err != nil {
			t.Fatal(err)
		}
	}

	d := NewDashboard(b)
	if !d.LastPriceDay.IsZero() {
		t.Errorf("last price day = %s, want zero without any price", d.LastPriceDay)
	}

	var vti []Alert
	for _, a := range d.Alerts {
		if a.Symbol == "VTI" {
			vti = append(vti, a)
		}
	}
	if len(vti) != 1 {
		t.Fatalf("VTI alerts = %v, want a single one", vti)
	}
	if vti[0].Status != StatusNoPrice {
		t.Errorf("VTI alert status = %q, want %q", vti[0].Status, StatusNoPrice)
	}

	asset := d.Classes[0].Assets[0]
	if !asset.UnitsToBuy.IsZero() || !asset.ValueToBuy.IsZero() {
		t.Errorf("suggestion = %s (%s), want none without a price", asset.UnitsToBuy, asset.ValueToBuy)
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		deviation Percent
		threshold Percent
		want      Status
	}{
		{0, 5, StatusOK},
		{4.9, 5, StatusOK},
		{-4.9, 5, StatusOK},
		{5, 5, StatusAlert},
		{5.9, 5, StatusAlert},
		{6, 5, StatusCritical},
		{7.1, 5, StatusCritical},
		{7.2, 5, StatusSevere},
		{-25, 10, StatusSevere},
	}
	for _, tt := range tests {
		if got := statusOf(tt.deviation, tt.threshold); got != tt.want {
			t.Errorf("statusOf(%s, %s) = %q, want %q", tt.deviation, tt.threshold, got, tt.want)
		}
	}
}

func TestDashboardSeries(t *testing.T) {
	labels, shares := NewDashboard(demoBook()).Series()
	if len(labels) != 3 || labels[2] != "cash" {
		t.Fatalf("labels = %v, want [stocks crypto cash]", labels)
	}
	var total float64
	for _, s := range shares {
		total += s
	}
	if math.Abs(total-100) > 0.01 {
		t.Errorf("shares sum to %.2f, want 100", total)
	}
}
