package sourcing

import (
	"context"
	"fmt"
	"sync"

	"github.com/wearloom/stylist-backend/models"
	"github.com/wearloom/stylist-backend/sourcing/asos"
	"github.com/wearloom/stylist-backend/sourcing/zalando"
)

// Service finds one real, for-sale product per planned item across the
// registered retailer adapters.
type Service struct {
	adapters []Adapter
	fetcher  *Fetcher
}

// NewService registers the fixed adapter set.
func NewService(fetcher *Fetcher) *Service {
	return &Service{
		adapters: []Adapter{
			asos.New(),
			zalando.New(),
		},
		fetcher: fetcher,
	}
}

// NewServiceWithAdapters is used by tests to inject stub adapters.
func NewServiceWithAdapters(fetcher *Fetcher, adapters ...Adapter) *Service {
	return &Service{adapters: adapters, fetcher: fetcher}
}

// FindOne executes the fallback chain over the given requests and returns
// the first hit, or nil when no retailer had a match. Primary URLs for all
// adapters are tried concurrently first; backup URLs are only consulted
// when every primary attempt came back empty.
func (s *Service) FindOne(ctx context.Context, requests []SourceRequest) *models.ScrapedProduct {
	if product := s.runPhase(ctx, requests, func(r SourceRequest) string { return r.PrimaryURL }); product != nil {
		return product
	}
	return s.runPhase(ctx, requests, func(r SourceRequest) string { return r.BackupURL })
}

// runPhase fans the adapter calls for one item out concurrently and picks
// the first non-nil result in request order, keeping selection stable.
func (s *Service) runPhase(ctx context.Context, requests []SourceRequest, urlOf func(SourceRequest) string) *models.ScrapedProduct {
	results := make([]*models.ScrapedProduct, len(requests))
	var wg sync.WaitGroup

	for i, request := range requests {
		url := urlOf(request)
		if url == "" {
			continue
		}
		adapter := s.adapterFor(request.Source)
		if adapter == nil {
			continue
		}

		wg.Add(1)
		go func(i int, request SourceRequest, url string, adapter Adapter) {
			defer wg.Done()

			body, err := s.fetcher.Fetch(ctx, url, adapter.Headers())
			if err != nil {
				// Transport failure on every tier; treated as a miss.
				fmt.Printf("[Sourcing] %s attempt failed: %v\n", request.Source, err)
				return
			}
			results[i] = adapter.Parse(body, request.Item, request.Locale, request.BrandAllowList)
		}(i, request, url, adapter)
	}

	wg.Wait()
	for _, result := range results {
		if result != nil {
			return result
		}
	}
	return nil
}

func (s *Service) adapterFor(source string) Adapter {
	for _, adapter := range s.adapters {
		if adapter.Name() == source {
			return adapter
		}
	}
	return nil
}
