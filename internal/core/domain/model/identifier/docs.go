// Package identifier issues human-readable order identifiers and customer
// serial numbers.
//
// Every function here is pure: it receives the last issued value and returns
// the next one. Persisting that state, and serialising concurrent callers on
// it, is the job of the application layer (see the AllocateSerial and
// CreateOrder command handlers, which read and write the sequence row under
// SELECT ... FOR UPDATE).
//
// Two order-id schemes exist and exactly one is active per deployment:
//
//   - PeriodScheme, the canonical one: two letters encoding a 14-day period
//     counted from an anchor date, followed by a 3+ digit sequence
//     ("AA001", "AA002", "AB001").
//   - YearMonthScheme: a year letter (2021 = A) and a month letter
//     (January = A) followed by a sequence that restarts every month ("EH001").
//
// Each scheme keeps its state under its own sequence key so switching the
// configuration never mixes the two numbering spaces.
package identifier
