package websets

import (
	"encoding/json"
	"time"
)

// Page is the cursor-paginated list envelope the API returns.
type Page[T any] struct {
	Data       []T     `json:"data"`
	HasMore    bool    `json:"hasMore"`
	NextCursor *string `json:"nextCursor"`
}

// Webset is a web-data collection.
type Webset struct {
	ID          string            `json:"id"`
	Object      string            `json:"object"`
	Status      string            `json:"status"`
	ExternalID  *string           `json:"externalId"`
	Searches    json.RawMessage   `json:"searches,omitempty"`
	Enrichments json.RawMessage   `json:"enrichments,omitempty"`
	Monitors    json.RawMessage   `json:"monitors,omitempty"`
	Items       json.RawMessage   `json:"items,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// CreateWebsetRequest creates a webset, optionally with an initial search
// and enrichments. The nested specs are raw domain JSON.
type CreateWebsetRequest struct {
	Search      json.RawMessage   `json:"search,omitempty"`
	Enrichments json.RawMessage   `json:"enrichments,omitempty"`
	ExternalID  string            `json:"externalId,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// UpdateWebsetRequest updates webset metadata.
type UpdateWebsetRequest struct {
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Search is an asynchronous search run against a webset.
type Search struct {
	ID        string          `json:"id"`
	Object    string          `json:"object"`
	Status    string          `json:"status"`
	WebsetID  string          `json:"websetId"`
	Query     string          `json:"query"`
	Criteria  json.RawMessage `json:"criteria,omitempty"`
	Count     int             `json:"count"`
	Progress  json.RawMessage `json:"progress,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// CreateSearchRequest starts a search on a webset.
type CreateSearchRequest struct {
	Query    string            `json:"query"`
	Count    int               `json:"count,omitempty"`
	Criteria json.RawMessage   `json:"criteria,omitempty"`
	Entity   json.RawMessage   `json:"entity,omitempty"`
	Behavior string            `json:"behavior,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Item is one result row in a webset.
type Item struct {
	ID          string          `json:"id"`
	Object      string          `json:"object"`
	Source      string          `json:"source"`
	SourceID    string          `json:"sourceId"`
	WebsetID    string          `json:"websetId"`
	Properties  json.RawMessage `json:"properties,omitempty"`
	Evaluations json.RawMessage `json:"evaluations,omitempty"`
	Enrichments json.RawMessage `json:"enrichments,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Enrichment adds a derived column to every item in a webset.
type Enrichment struct {
	ID          string          `json:"id"`
	Object      string          `json:"object"`
	Status      string          `json:"status"`
	WebsetID    string          `json:"websetId"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description"`
	Format      string          `json:"format,omitempty"`
	Options     json.RawMessage `json:"options,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CreateEnrichmentRequest adds an enrichment to a webset.
type CreateEnrichmentRequest struct {
	Description string            `json:"description"`
	Format      string            `json:"format,omitempty"`
	Options     json.RawMessage   `json:"options,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// UpdateEnrichmentRequest updates enrichment metadata.
type UpdateEnrichmentRequest struct {
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Webhook delivers event notifications to an external URL.
type Webhook struct {
	ID        string            `json:"id"`
	Object    string            `json:"object"`
	Status    string            `json:"status"`
	URL       string            `json:"url"`
	Events    []string          `json:"events"`
	Secret    *string           `json:"secret,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// CreateWebhookRequest registers a webhook.
type CreateWebhookRequest struct {
	URL      string            `json:"url"`
	Events   []string          `json:"events"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// UpdateWebhookRequest updates a webhook's target or subscriptions.
type UpdateWebhookRequest struct {
	URL      string            `json:"url,omitempty"`
	Events   []string          `json:"events,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// WebhookAttempt records one delivery attempt for an event.
type WebhookAttempt struct {
	ID             string    `json:"id"`
	Object         string    `json:"object"`
	EventID        string    `json:"eventId"`
	EventType      string    `json:"eventType"`
	WebhookID      string    `json:"webhookId"`
	URL            string    `json:"url"`
	Successful     bool      `json:"successful"`
	ResponseStatus int       `json:"responseStatusCode"`
	Attempt        int       `json:"attempt"`
	AttemptedAt    time.Time `json:"attemptedAt"`
}

// Event is an audit-trail entry for webset activity.
type Event struct {
	ID        string          `json:"id"`
	Object    string          `json:"object"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Monitor re-runs a webset search or refreshes its contents on a schedule.
type Monitor struct {
	ID        string            `json:"id"`
	Object    string            `json:"object"`
	Status    string            `json:"status"`
	WebsetID  string            `json:"websetId"`
	Cadence   json.RawMessage   `json:"cadence,omitempty"`
	Behavior  json.RawMessage   `json:"behavior,omitempty"`
	LastRun   json.RawMessage   `json:"lastRun,omitempty"`
	NextRunAt *time.Time        `json:"nextRunAt,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// CreateMonitorRequest schedules a monitor on a webset.
type CreateMonitorRequest struct {
	WebsetID string            `json:"websetId"`
	Cadence  json.RawMessage   `json:"cadence"`
	Behavior json.RawMessage   `json:"behavior"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// UpdateMonitorRequest changes a monitor's status or schedule.
type UpdateMonitorRequest struct {
	Status   string            `json:"status,omitempty"`
	Cadence  json.RawMessage   `json:"cadence,omitempty"`
	Behavior json.RawMessage   `json:"behavior,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// ListOpts are the cursor-pagination parameters shared by list calls.
type ListOpts struct {
	Cursor string
	Limit  int
}
