package folio

// test helpers for readable amounts.

func USD(value float64) Money { return M(value, "USD") }
func EUR(value float64) Money { return M(value, "EUR") }
func BRL(value float64) Money { return M(value, "BRL") }

// demoBook builds a small but complete portfolio used across tests: two
// classes, three priced assets, one of them crypto.
func demoBook() *Book {
	b := NewBook()
	day := NewDate(2025, 6, 1)
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(b.Append(NewDeclarePortfolio(day, "", "retirement", "USD", USD(100000))))
	must(b.Append(NewDeclareClass(day, "", "stocks", 60, 5)))
	must(b.Append(NewDeclareClass(day, "", "crypto", 20, 10)))
	must(b.Append(NewDeclareAsset(day, "", "AAPL", "Apple Inc", "stocks")))
	must(b.Append(NewDeclareAsset(day, "", "MSFT", "Microsoft", "stocks")))
	must(b.Append(NewDeclareAsset(day, "", "BTC-USD", "Bitcoin", "crypto")))
	must(b.Append(NewSetTarget(day, "", "AAPL", 50, 5)))
	must(b.Append(NewSetTarget(day, "", "MSFT", 50, 5)))
	must(b.Append(NewSetTarget(day, "", "BTC-USD", 100, 10)))
	must(b.Append(NewSetQuantity(day, "", "AAPL", Q(100))))
	must(b.Append(NewSetQuantity(day, "", "MSFT", Q(50))))
	must(b.Append(NewSetQuantity(day, "", "BTC-USD", Q(0.25))))
	must(b.AppendOrUpdate(NewUpdatePrice(day, "AAPL", newDecimal(200.0), "finnhub")))
	must(b.AppendOrUpdate(NewUpdatePrice(day, "MSFT", newDecimal(400.0), "finnhub")))
	must(b.AppendOrUpdate(NewUpdatePrice(day, "BTC-USD", newDecimal(60000.0), "coingecko")))
	return b
}
