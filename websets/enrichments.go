package websets

import "context"

const opEnrichmentGet = "enrichment.get"

// CreateEnrichment adds an enrichment column to a webset.
func (s *Service) CreateEnrichment(ctx context.Context, websetID string, req CreateEnrichmentRequest) (*Enrichment, error) {
	var out Enrichment
	if err := s.client.PostJSON(ctx, basePath+"/websets/"+websetID+"/enrichments", req, &out); err != nil {
		return nil, err
	}
	s.invalidate(ctx, opWebsetGet, opEnrichmentGet)
	return &out, nil
}

// GetEnrichment fetches an enrichment.
func (s *Service) GetEnrichment(ctx context.Context, websetID, enrichmentID string) (*Enrichment, error) {
	var out Enrichment
	input := map[string]any{"websetId": websetID, "enrichmentId": enrichmentID}
	if err := s.cachedGet(ctx, opEnrichmentGet, input, basePath+"/websets/"+websetID+"/enrichments/"+enrichmentID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateEnrichment updates enrichment metadata.
func (s *Service) UpdateEnrichment(ctx context.Context, websetID, enrichmentID string, req UpdateEnrichmentRequest) (*Enrichment, error) {
	var out Enrichment
	if err := s.client.PatchJSON(ctx, basePath+"/websets/"+websetID+"/enrichments/"+enrichmentID, req, &out); err != nil {
		return nil, err
	}
	s.invalidate(ctx, opWebsetGet, opEnrichmentGet)
	return &out, nil
}

// DeleteEnrichment removes an enrichment and its values from all items.
func (s *Service) DeleteEnrichment(ctx context.Context, websetID, enrichmentID string) (*Enrichment, error) {
	var out Enrichment
	if err := s.client.DeleteJSON(ctx, basePath+"/websets/"+websetID+"/enrichments/"+enrichmentID, &out); err != nil {
		return nil, err
	}
	s.invalidate(ctx, opWebsetGet, opEnrichmentGet, opItemGet, opItemList)
	return &out, nil
}

// CancelEnrichment stops a running enrichment.
func (s *Service) CancelEnrichment(ctx context.Context, websetID, enrichmentID string) (*Enrichment, error) {
	var out Enrichment
	if err := s.client.PostJSON(ctx, basePath+"/websets/"+websetID+"/enrichments/"+enrichmentID+"/cancel", nil, &out); err != nil {
		return nil, err
	}
	s.invalidate(ctx, opWebsetGet, opEnrichmentGet)
	return &out, nil
}
