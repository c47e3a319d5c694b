// Package order holds the Order aggregate: a manufactured item moving through
// the departments of the production line.
//
// Key business rules:
//   - An order id is issued once at creation and never changes.
//   - Status follows DRAFT -> FINALIZED -> IN_PROGRESS -> SHIPPED; CANCELLED is
//     reachable from every non-terminal status.
//   - Leaving the entry departments moves a FINALIZED order to IN_PROGRESS.
//   - Every department move restarts the dwell clock (departmentEnteredAt).
//   - A missing due date is allowed; schedule health is then indeterminate.
package order
