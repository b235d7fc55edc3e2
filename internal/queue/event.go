// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into an audit log.
package queue

// TraceRecordedEvent is published after a property create or full update
// persists a new sale trace.  It carries enough context for downstream
// consumers to log or analyze sale history without querying MySQL.
type TraceRecordedEvent struct {
    PropertyID uint64  `json:"property_id"`
    Name       string  `json:"name"`
    Value      float64 `json:"value"`
    Tax        float64 `json:"tax"`
    DateSale   string  `json:"date_sale"`
    Action     string  `json:"action"` // "created" or "updated"
    RecordedAt string  `json:"recorded_at"`
}

// traceQueueName is the durable queue both the publisher and the consumer
// declare.  Declaration is idempotent, so either side may start first.
const traceQueueName = "property.trace.recorded"
