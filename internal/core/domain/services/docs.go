// Package services provides the domain services of the production line that
// span several aggregates.
//
// The package includes:
//   - ScheduleEngine: places finalized orders on fixture/date slots under
//     capacity, compatibility and weekday constraints
//   - StatusClassifier: derives the schedule health of an order from its due
//     date, department dwell and the lead-time table
//
// Both services are deterministic and free of I/O; callers supply snapshots
// and persist the results.
package services
