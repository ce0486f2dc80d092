package websets

import "context"

const (
	opMonitorGet  = "monitor.get"
	opMonitorList = "monitor.list"
)

// CreateMonitor schedules a recurring refresh or search on a webset.
func (s *Service) CreateMonitor(ctx context.Context, req CreateMonitorRequest) (*Monitor, error) {
	var out Monitor
	if err := s.client.PostJSON(ctx, basePath+"/monitors", req, &out); err != nil {
		return nil, err
	}
	s.invalidate(ctx, opMonitorList, opWebsetGet)
	return &out, nil
}

// GetMonitor fetches a monitor.
func (s *Service) GetMonitor(ctx context.Context, id string) (*Monitor, error) {
	var out Monitor
	input := map[string]any{"id": id}
	if err := s.cachedGet(ctx, opMonitorGet, input, basePath+"/monitors/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMonitors pages through monitors, optionally scoped to one webset.
func (s *Service) ListMonitors(ctx context.Context, websetID string, opts ListOpts) (*Page[Monitor], error) {
	params := listParams(opts)
	if websetID != "" {
		params.Set("websetId", websetID)
	}

	var out Page[Monitor]
	input := map[string]any{"websetId": websetID, "cursor": opts.Cursor, "limit": opts.Limit}
	if err := s.cachedGet(ctx, opMonitorList, input, basePath+"/monitors", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMonitor changes a monitor's status or schedule.
func (s *Service) UpdateMonitor(ctx context.Context, id string, req UpdateMonitorRequest) (*Monitor, error) {
	var out Monitor
	if err := s.client.PatchJSON(ctx, basePath+"/monitors/"+id, req, &out); err != nil {
		return nil, err
	}
	s.invalidate(ctx, opMonitorGet, opMonitorList)
	return &out, nil
}

// DeleteMonitor removes a monitor.
func (s *Service) DeleteMonitor(ctx context.Context, id string) (*Monitor, error) {
	var out Monitor
	if err := s.client.DeleteJSON(ctx, basePath+"/monitors/"+id, &out); err != nil {
		return nil, err
	}
	s.invalidate(ctx, opMonitorGet, opMonitorList)
	return &out, nil
}
