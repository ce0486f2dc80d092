package websets

import "context"

const (
	opEventGet  = "event.get"
	opEventList = "event.list"
)

// GetEvent fetches a single event.
func (s *Service) GetEvent(ctx context.Context, id string) (*Event, error) {
	var out Event
	input := map[string]any{"id": id}
	if err := s.cachedGet(ctx, opEventGet, input, basePath+"/events/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListEvents pages through the event stream, optionally filtered by types.
func (s *Service) ListEvents(ctx context.Context, types []string, opts ListOpts) (*Page[Event], error) {
	params := listParams(opts)
	for _, t := range types {
		params.Add("types", t)
	}

	var out Page[Event]
	input := map[string]any{"types": types, "cursor": opts.Cursor, "limit": opts.Limit}
	if err := s.cachedGet(ctx, opEventList, input, basePath+"/events", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
