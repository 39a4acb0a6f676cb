package folio

import (
	"strings"
	"testing"
)

func TestEncodeDecodeBook(t *testing.T) {
	b := demoBook()

	var out strings.Builder
	if err := EncodeBook(&out, b); err != nil {
		t.Fatal(err)
	}

	got, err := DecodeBook(strings.NewReader(out.String()))
	if err != nil {
		t.Fatal(err)
	}
	want, decoded := records(b), records(got)
	if len(decoded) != len(want) {
		t.Fatalf("decoded %d records, want %d", len(decoded), len(want))
	}
	for i := range want {
		if !want[i].Equal(decoded[i]) {
			t.Errorf("record %d: decoded %v, want %v", i, decoded[i], want[i])
		}
	}
}

func records(b *Book) []Record {
	var out []Record
	for r := range b.Records() {
		out = append(out, r)
	}
	return out
}

func TestDecodeBookJournal(t *testing.T) {
	journal := `{"command":"portfolio","date":"2025-06-01","name":"retirement","currency":"EUR","value":50000}
{"command":"class","date":"2025-06-01","name":"stocks","target":60,"threshold":5}
{"command":"asset","date":"2025-06-01","symbol":"AAPL","name":"Apple Inc","class":"stocks"}
{"command":"set-quantity","date":"2025-06-02","symbol":"AAPL","quantity":10.5}
{"command":"update-price","date":"2025-06-02","prices":{"AAPL":199.9},"sources":{"AAPL":"stooq"}}
`
	b, err := DecodeBook(strings.NewReader(journal))
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Validate(); err != nil {
		t.Fatal(err)
	}
	if got := b.Portfolio().Value; !got.Equal(EUR(50000)) {
		t.Errorf("portfolio value = %s, want 50,000.00 EUR", got)
	}
	a := b.Asset("AAPL")
	if a == nil {
		t.Fatal("asset AAPL not decoded")
	}
	if !a.Quantity.Equal(Q(10.5)) {
		t.Errorf("AAPL quantity = %s, want 10.5", a.Quantity)
	}
	if !a.Price.Equal(newDecimal(199.9)) {
		t.Errorf("AAPL price = %s, want 199.9", a.Price)
	}
}

func TestDecodeBookErrors(t *testing.T) {
	tests := []struct {
		name    string
		journal string
		want    string
	}{
		{"unknown command", `{"command":"buy","date":"2025-06-01"}`, `unknown command "buy"`},
		{"missing command", `{"date":"2025-06-01"}`, "no command"},
		{"broken json", `{"command":"class",`, "line 1"},
		{
			"line number in error",
			`{"command":"portfolio","date":"2025-06-01","name":"p","currency":"USD","value":1}` + "\n" + `{"command":"nope"}`,
			"line 2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBook(strings.NewReader(tt.journal))
			if err == nil {
				t.Fatal("decode succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestEncodeBookIsCanonical(t *testing.T) {
	// decoding an untidy journal and re-encoding it yields a normalized one.
	journal := `{"date":"2025-06-01","value":1000,"currency":"USD","name":"p","command":"portfolio"}
{"target":100,"name":"stocks","command":"class","date":"2025-06-01","threshold":5}
`
	b, err := DecodeBook(strings.NewReader(journal))
	if err != nil {
		t.Fatal(err)
	}
	var out strings.Builder
	if err := EncodeBook(&out, b); err != nil {
		t.Fatal(err)
	}
	want := `{"command":"portfolio","date":"2025-06-01","name":"p","currency":"USD","value":1000}
{"command":"class","date":"2025-06-01","name":"stocks","target":100,"threshold":5}
`
	if out.String() != want {
		t.Errorf("canonical journal:\n%s\nwant:\n%s", out.String(), want)
	}
}
