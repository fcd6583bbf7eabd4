// Package vnfolio implements a local-first tracker for a personal Vietnamese
// stock portfolio spread across multiple brokerage accounts.
//
// The core functionalities include:
//   - Ledger Engine: an immutable state of holdings, cash balances per
//     brokerage, and an append-only transaction history. Every operation
//     (buy, sell, deposit, withdraw, dividends) is a pure transition that
//     either yields a fully consistent new state or rejects the operation.
//   - Derived Statistics: stock value, total assets, lifetime net capital,
//     and profit are recomputed on demand from the state, never stored.
//   - State Codec: the full state round-trips through a single JSON
//     document, compatible with the spreadsheet-webhook remote store.
//   - Sync Store: a best-effort mirror of the state to a user-supplied
//     webhook endpoint. Pushes are fire-and-forget, pulls replace local
//     state wholesale, and the last writer wins.
//   - Quote Provider: latest matched prices for held symbols, fetched from
//     a public quote endpoint.
//
// This package serves as the foundational logic for the `vnf` command-line
// tool. AI-generated portfolio commentary lives in the advisor subpackage.
package vnfolio
