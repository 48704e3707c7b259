// Package notify delivers the end-of-run report to the operator.
//
// The pipeline buffers every warning and error of a run and hands the text to
// a Notifier once all stages finished. StorageNotifier drops it as a file next
// to the exports; LogNotifier writes it to the process log.
package notify
