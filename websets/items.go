package websets

import "context"

const (
	opItemGet  = "item.get"
	opItemList = "item.list"
)

// GetItem fetches a single item from a webset.
func (s *Service) GetItem(ctx context.Context, websetID, itemID string) (*Item, error) {
	var out Item
	input := map[string]any{"websetId": websetID, "itemId": itemID}
	if err := s.cachedGet(ctx, opItemGet, input, basePath+"/websets/"+websetID+"/items/"+itemID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListItems pages through a webset's items.
func (s *Service) ListItems(ctx context.Context, websetID string, opts ListOpts) (*Page[Item], error) {
	var out Page[Item]
	input := map[string]any{"websetId": websetID, "cursor": opts.Cursor, "limit": opts.Limit}
	if err := s.cachedGet(ctx, opItemList, input, basePath+"/websets/"+websetID+"/items", listParams(opts), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteItem removes an item from a webset.
func (s *Service) DeleteItem(ctx context.Context, websetID, itemID string) (*Item, error) {
	var out Item
	if err := s.client.DeleteJSON(ctx, basePath+"/websets/"+websetID+"/items/"+itemID, &out); err != nil {
		return nil, err
	}
	s.invalidate(ctx, opItemGet, opItemList, opWebsetGet)
	return &out, nil
}
