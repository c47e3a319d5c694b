// Package kernel holds the value objects shared by every aggregate of the
// production domain.
//
//   - UUID wraps github.com/google/uuid and identifies schedule assignments.
//   - Date is a civil calendar day without time-of-day or zone. Due dates,
//     schedule slots, department entry days and the identifier period anchor
//     are all Dates, so day arithmetic never depends on the server time zone.
//
// The zero value of each type is invalid and reported by Validate.
package kernel
