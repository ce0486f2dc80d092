package websets

import "context"

const opSearchGet = "search.get"

// CreateSearch starts an asynchronous search on a webset.
func (s *Service) CreateSearch(ctx context.Context, websetID string, req CreateSearchRequest) (*Search, error) {
	var out Search
	if err := s.client.PostJSON(ctx, basePath+"/websets/"+websetID+"/searches", req, &out); err != nil {
		return nil, err
	}
	s.invalidate(ctx, opWebsetGet, opSearchGet)
	return &out, nil
}

// GetSearch fetches a search and its progress.
func (s *Service) GetSearch(ctx context.Context, websetID, searchID string) (*Search, error) {
	var out Search
	input := map[string]any{"websetId": websetID, "searchId": searchID}
	if err := s.cachedGet(ctx, opSearchGet, input, basePath+"/websets/"+websetID+"/searches/"+searchID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelSearch stops a running search.
func (s *Service) CancelSearch(ctx context.Context, websetID, searchID string) (*Search, error) {
	var out Search
	if err := s.client.PostJSON(ctx, basePath+"/websets/"+websetID+"/searches/"+searchID+"/cancel", nil, &out); err != nil {
		return nil, err
	}
	s.invalidate(ctx, opWebsetGet, opSearchGet)
	return &out, nil
}
