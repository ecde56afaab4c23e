// Package schedule holds the planner's domain model: recurring task
// definitions, per-day completion and override records, and the pure
// materialization that derives a calendar day's visible occurrences from a
// user's full data set.
package schedule
