// The buddy package is the core of a single-user task list: a Store that owns the list and persists it to
// a key-value backend (see package kv), pure functions deriving display order and urgency from a list,
// and a Widget that reads the persisted list from another process and summarizes outstanding tasks.
//
// The store keeps the authoritative copy of the list in memory. Every mutation updates that copy and
// then schedules a write of the whole list; writes happen in the background, in mutation order, and are
// never retried. Load treats any read or decode failure as an empty list. There is exactly one writer,
// the store of the foreground program; widgets only read, so the backend's whole-value atomicity is
// all the isolation needed.
//
// Display order is never stored. Sort orders by time left until the deadline, overdue first, tasks
// without a deadline last, keeping input order among ties. Classify buckets a task by urgency.
//
// Export and Import use the persisted format, a JSON array of objects with the properties id, title,
// deadline, completed and createdAt. Properties not known to this package are carried along untouched.
package buddy // import "github.com/nicolagi/buddy"
