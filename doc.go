// Package banker manages personal financial records declared in on-disk
// configuration and verifies that they are complete.
//
// The records live under a data directory:
//   - accounts/<short name>/index.yaml declares an account, and its statement
//     directories each hold the statement files plus an optional index.yaml
//     describing the expected cadence and the known exceptions.
//   - schedule.yaml declares recurring payments.
//   - transactions/YYYY-MM.yaml holds the recorded transactions.
//   - receipts/ holds the receipt files referenced by transactions.
//
// The heart of the package is the statement reconciliation: a Catalog merges
// the statement files of a directory with the declared null and known missing
// periods, and FindMissing sweeps the expected periods of a FrequencyPolicy to
// find the ones that have no statement, tolerating calendar drift.
//
// This package serves as the foundational logic for the `banker` command-line
// tool.
package banker
