package websets

import "context"

const (
	opWebhookGet      = "webhook.get"
	opWebhookList     = "webhook.list"
	opWebhookAttempts = "webhook.attempts"
)

// CreateWebhook registers a webhook. The signing secret is only returned
// on creation.
func (s *Service) CreateWebhook(ctx context.Context, req CreateWebhookRequest) (*Webhook, error) {
	var out Webhook
	if err := s.client.PostJSON(ctx, basePath+"/webhooks", req, &out); err != nil {
		return nil, err
	}
	s.invalidate(ctx, opWebhookList)
	return &out, nil
}

// GetWebhook fetches a webhook.
func (s *Service) GetWebhook(ctx context.Context, id string) (*Webhook, error) {
	var out Webhook
	input := map[string]any{"id": id}
	if err := s.cachedGet(ctx, opWebhookGet, input, basePath+"/webhooks/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListWebhooks pages through all registered webhooks.
func (s *Service) ListWebhooks(ctx context.Context, opts ListOpts) (*Page[Webhook], error) {
	var out Page[Webhook]
	if err := s.cachedGet(ctx, opWebhookList, opts, basePath+"/webhooks", listParams(opts), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateWebhook changes a webhook's target URL or event subscriptions.
func (s *Service) UpdateWebhook(ctx context.Context, id string, req UpdateWebhookRequest) (*Webhook, error) {
	var out Webhook
	if err := s.client.PatchJSON(ctx, basePath+"/webhooks/"+id, req, &out); err != nil {
		return nil, err
	}
	s.invalidate(ctx, opWebhookGet, opWebhookList)
	return &out, nil
}

// DeleteWebhook unregisters a webhook.
func (s *Service) DeleteWebhook(ctx context.Context, id string) (*Webhook, error) {
	var out Webhook
	if err := s.client.DeleteJSON(ctx, basePath+"/webhooks/"+id, &out); err != nil {
		return nil, err
	}
	s.invalidate(ctx, opWebhookGet, opWebhookList, opWebhookAttempts)
	return &out, nil
}

// ListWebhookAttempts pages through a webhook's delivery attempts, newest
// first, optionally filtered by event type.
func (s *Service) ListWebhookAttempts(ctx context.Context, id, eventType string, opts ListOpts) (*Page[WebhookAttempt], error) {
	params := listParams(opts)
	if eventType != "" {
		params.Set("eventType", eventType)
	}

	var out Page[WebhookAttempt]
	input := map[string]any{"id": id, "eventType": eventType, "cursor": opts.Cursor, "limit": opts.Limit}
	if err := s.cachedGet(ctx, opWebhookAttempts, input, basePath+"/webhooks/"+id+"/attempts", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
