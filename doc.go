// Package folio provides the functions and types for managing a personal
// investment portfolio against a target allocation. It is designed to be
// local-first, auditable, and extensible, ensuring users have full control
// and transparency over their financial data.
//
// The core functionalities include:
//   - Journal Management: Recording portfolio structure and holdings
//     (portfolio declaration, asset classes, assets, quantities, targets,
//     and daily prices) in a chronological, human-readable record.
//   - Price Consensus: Aggregating quotes from several public providers
//     into a single consensus price with outlier rejection and divergence
//     flagging (see the quote subpackage).
//   - Rebalancing Dashboard: A stateless engine that processes the journal
//     and latest prices to compute allocation versus target, deviation
//     statuses, and buy/sell suggestions.
//   - Statement Import: Parsing brokerage screenshot text into holdings
//     (see the imports subpackage).
//   - Data Persistence: Encoding and decoding the journal to and from a
//     human-readable, version-controllable JSONL format.
//
// This package serves as the foundational logic for the `folio`
// command-line tool, ensuring that all operations are consistent and based
// on a single source of truth.
package folio
