// Package websets wraps the Websets API surface: websets, searches, items,
// enrichments, webhooks, events and monitors.
//
// The wrappers are thin CRUD glue over the resilient client. Nested domain
// payloads (search criteria, enrichment specs, item properties) pass
// through as raw JSON; this package models the envelopes it needs for
// paging and identity, not the domain semantics inside them.
//
// Read-only lookups go through the shared read-through cache; mutations
// bypass it and invalidate the operations they affect.
package websets
