// Package pipeline sequences the sync tasks.
//
// A pipeline is an explicit list of Stage descriptors (name, batch
// discipline, task) executed strictly in order: inventory, orders,
// shipments, payments. Stages are independent business concerns, so a
// failed stage is recorded and the next one still runs. After the last
// stage the run log is drained into a single report for the notifier and
// reset for the next invocation.
package pipeline
