package websets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/websetkit/websets-mcp/cache"
	"github.com/websetkit/websets-mcp/client"
)

// basePath is the Websets API version prefix.
const basePath = "/websets/v0"

// Service exposes the Websets API operations over the resilient client.
type Service struct {
	client *client.Client
	cache  *cache.ReadThrough
	logger zerolog.Logger
}

// NewService creates a Service. rt may be nil to disable caching.
func NewService(c *client.Client, rt *cache.ReadThrough, logger zerolog.Logger) *Service {
	return &Service{
		client: c,
		cache:  rt,
		logger: logger.With().Str("component", "websets").Logger(),
	}
}

// cachedGet serves a GET through the read-through cache and decodes the
// body into out. input keys the cache entry together with operation.
func (s *Service) cachedGet(ctx context.Context, operation string, input any, path string, params url.Values, out any) error {
	data, hit, err := s.cache.Get(ctx, operation, input, func(ctx context.Context) ([]byte, error) {
		resp, err := s.client.Request(ctx, client.Opts{
			Method: http.MethodGet,
			Path:   path,
			Params: params,
		})
		if err != nil {
			return nil, err
		}
		return resp.Data, nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug().Str("operation", operation).Bool("cache_hit", hit).Msg("lookup served")

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("websets: decode %s response: %w", operation, err)
	}
	return nil
}

// invalidate drops cached results for the given operations after a mutation.
func (s *Service) invalidate(ctx context.Context, operations ...string) {
	s.cache.Invalidate(ctx, operations...)
}

// listParams builds the shared cursor-pagination query.
func listParams(opts ListOpts) url.Values {
	params := url.Values{}
	if opts.Cursor != "" {
		params.Set("cursor", opts.Cursor)
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}
	return params
}
