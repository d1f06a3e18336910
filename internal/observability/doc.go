// Package observability provides event logging, transfer metrics, and
// summary notification for perinote. Events persist as structured JSON
// Lines (JSONL); metrics are derived on demand from the event log.
package observability
