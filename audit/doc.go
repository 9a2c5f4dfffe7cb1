// Package audit implements hsm.AuditRecorder with a bulk-draining
// background log: dispatch-core events are buffered on a channel and
// flushed as batched, summarized structured log records rather than one
// log write per event.
package audit
