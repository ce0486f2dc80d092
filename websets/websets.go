package websets

import (
	"context"
	"net/url"
)

// Cache operations touched by webset calls.
const (
	opWebsetGet  = "webset.get"
	opWebsetList = "webset.list"
)

// CreateWebset creates a webset, optionally with an initial search.
func (s *Service) CreateWebset(ctx context.Context, req CreateWebsetRequest) (*Webset, error) {
	var out Webset
	if err := s.client.PostJSON(ctx, basePath+"/websets", req, &out); err != nil {
		return nil, err
	}
	s.invalidate(ctx, opWebsetList)
	return &out, nil
}

// GetWebset fetches a webset, optionally expanding its items inline.
func (s *Service) GetWebset(ctx context.Context, id string, expandItems bool) (*Webset, error) {
	params := url.Values{}
	if expandItems {
		params.Set("expand", "items")
	}

	var out Webset
	input := map[string]any{"id": id, "expand": expandItems}
	if err := s.cachedGet(ctx, opWebsetGet, input, basePath+"/websets/"+id, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListWebsets pages through all websets.
func (s *Service) ListWebsets(ctx context.Context, opts ListOpts) (*Page[Webset], error) {
	var out Page[Webset]
	if err := s.cachedGet(ctx, opWebsetList, opts, basePath+"/websets", listParams(opts), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateWebset updates webset metadata.
func (s *Service) UpdateWebset(ctx context.Context, id string, req UpdateWebsetRequest) (*Webset, error) {
	var out Webset
	if err := s.client.PostJSON(ctx, basePath+"/websets/"+id, req, &out); err != nil {
		return nil, err
	}
	s.invalidate(ctx, opWebsetGet, opWebsetList)
	return &out, nil
}

// DeleteWebset deletes a webset and everything in it.
func (s *Service) DeleteWebset(ctx context.Context, id string) (*Webset, error) {
	var out Webset
	if err := s.client.DeleteJSON(ctx, basePath+"/websets/"+id, &out); err != nil {
		return nil, err
	}
	s.invalidate(ctx, opWebsetGet, opWebsetList, opItemList, opItemGet)
	return &out, nil
}

// CancelWebset cancels all running operations on a webset.
func (s *Service) CancelWebset(ctx context.Context, id string) (*Webset, error) {
	var out Webset
	if err := s.client.PostJSON(ctx, basePath+"/websets/"+id+"/cancel", nil, &out); err != nil {
		return nil, err
	}
	s.invalidate(ctx, opWebsetGet, opWebsetList)
	return &out, nil
}
