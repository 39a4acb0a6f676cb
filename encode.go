package folio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// DecodeBook reads a Book from its JSONL representation: one record per
// line, identified by its "command" attribute. Errors are reported with the
// line number of the offending record.
func DecodeBook(r io.Reader) (*Book, error) {
	book := NewBook()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}
		rec, err := decodeRecord(data)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		book.recs = append(book.recs, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading journal: %w", err)
	}
	book.stableSort()
	return book, nil
}

func decodeRecord(data []byte) (Record, error) {
	var header struct {
		Command CommandType `json:"command"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("invalid record: %w", err)
	}
	switch header.Command {
	case CmdPortfolio:
		var rec DeclarePortfolio
		return rec, unmarshal(data, &rec)
	case CmdClass:
		var rec DeclareClass
		return rec, unmarshal(data, &rec)
	case CmdAsset:
		var rec DeclareAsset
		return rec, unmarshal(data, &rec)
	case CmdSetQuantity:
		var rec SetQuantity
		return rec, unmarshal(data, &rec)
	case CmdSetTarget:
		var rec SetTarget
		return rec, unmarshal(data, &rec)
	case CmdRemoveAsset:
		var rec RemoveAsset
		return rec, unmarshal(data, &rec)
	case CmdUpdatePrice:
		var rec UpdatePrice
		return rec, unmarshal(data, &rec)
	case "":
		return nil, fmt.Errorf("record has no command attribute")
	default:
		return nil, fmt.Errorf("unknown command %q", header.Command)
	}
}

func unmarshal[T Record](data []byte, rec *T) error {
	if err := json.Unmarshal(data, rec); err != nil {
		return fmt.Errorf("invalid %s record: %w", (*rec).What(), err)
	}
	return nil
}

// EncodeBook writes the Book in its canonical JSONL representation. Decoding
// and re-encoding a journal is how `folio fmt` normalizes a hand-edited
// file.
func EncodeBook(w io.Writer, book *Book) error {
	for rec := range book.Records() {
		if err := EncodeRecord(w, rec); err != nil {
			return err
		}
	}
	return nil
}

// EncodeRecord writes a single record as one JSON line.
func EncodeRecord(w io.Writer, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding %s record: %w", rec.What(), err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing journal: %w", err)
	}
	return nil
}
