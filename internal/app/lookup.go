package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Adda-Baaj/salestax-lookup/internal/config"
	"github.com/Adda-Baaj/salestax-lookup/internal/domain"
	"github.com/Adda-Baaj/salestax-lookup/internal/logger"
	"github.com/Adda-Baaj/salestax-lookup/internal/storage"
	"github.com/Adda-Baaj/salestax-lookup/pkg/httpclient"
	"github.com/Adda-Baaj/salestax-lookup/pkg/publishers"
	"github.com/Adda-Baaj/salestax-lookup/pkg/ziptax"
)

// Lookup resolves sales tax for an address. It wraps the API client with an
// optional response cache and fans successful lookups out to publishers.
type Lookup struct {
	apiKey string
	client *ziptax.Client
	store  storage.Store
	fanout *publishers.Fanout
	log    logger.Logger
}

// NewLookup wires a Lookup from already-built parts. store and fanout may be nil.
func NewLookup(apiKey string, client *ziptax.Client, store storage.Store, fanout *publishers.Fanout, log logger.Logger) (*Lookup, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key must not be empty")
	}
	if client == nil {
		return nil, fmt.Errorf("ziptax client must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if store == nil {
		store = storage.NoopStore()
	}
	return &Lookup{
		apiKey: apiKey,
		client: client,
		store:  store,
		fanout: fanout,
		log:    log,
	}, nil
}

// NewLookupFromConfig builds the HTTP client, cache and publishers described by cfg.
func NewLookupFromConfig(ctx context.Context, cfg *config.Config, log logger.Logger) (*Lookup, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	httpClient := httpclient.NewRestyClient(httpclient.Options{
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
	})
	client := ziptax.NewClient(cfg.BaseURL, httpClient, log)

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		TTL:             cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"ttl_seconds":              int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	fanout, err := buildFanout(ctx, cfg.PublishersFile, log)
	if err != nil {
		store.Close()
		return nil, err
	}

	return NewLookup(cfg.APIKey, client, store, fanout, log)
}

func buildFanout(ctx context.Context, path string, log logger.Logger) (*publishers.Fanout, error) {
	if strings.TrimSpace(path) == "" {
		return publishers.NewFanout(nil), nil
	}

	publisherReg, err := publishers.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	enabled := publisherReg.Enabled()
	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, pubCfg := range enabled {
		summaries = append(summaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubs), nil
}

// Resolve returns the tax rates for address. Errors from the API are *ziptax.Error.
func (l *Lookup) Resolve(ctx context.Context, address string) (*domain.TaxQueryResponse, error) {
	if l == nil || l.client == nil {
		return nil, fmt.Errorf("lookup is not initialized")
	}

	start := time.Now()
	key := storage.CacheKey(l.apiKey, address)

	if body, ok := l.cached(key); ok {
		resp, err := ziptax.Parse(body)
		if err == nil {
			l.log.DebugObj("lookup served from cache", "lookup_meta", map[string]any{
				"cache_key": key,
			})
			l.publish(ctx, address, publishers.SourceCache, resp)
			return resp, nil
		}
		l.log.WarnObj("cached response unreadable; refetching", "cache_error", err.Error())
	}

	body, err := l.client.Fetch(ctx, address, l.apiKey)
	if err != nil {
		return nil, err
	}
	resp, err := ziptax.Parse(body)
	if err != nil {
		return nil, err
	}

	// In-body API errors (bad key, bad address) arrive as 200s and must not be cached.
	if code, ok := resp.Code(); ok && code.OK() {
		if err := l.store.Put(key, body); err != nil {
			l.log.WarnObj("cache write failed", "cache_error", err.Error())
		}
	}
	l.log.InfoObj("lookup completed", "lookup_meta", map[string]any{
		"results_count": len(resp.Results),
		"response_code": resp.RCode.String(),
		"elapsed_ms":    time.Since(start).Milliseconds(),
	})
	l.publish(ctx, address, publishers.SourceAPI, resp)
	return resp, nil
}

// SalesTax is Resolve with every failure collapsed into a nil result after
// logging it once. A non-nil result with no Results is a valid "no match".
func (l *Lookup) SalesTax(ctx context.Context, address string) *domain.TaxQueryResponse {
	resp, err := l.Resolve(ctx, address)
	if err != nil {
		fields := map[string]any{"error": err.Error()}
		var apiErr *ziptax.Error
		if errors.As(err, &apiErr) {
			fields["kind"] = apiErr.Kind.String()
			if apiErr.StatusCode != 0 {
				fields["status_code"] = apiErr.StatusCode
			}
		}
		l.logger().ErrorObj(ziptax.FailureMessage(err), "lookup_error", fields)
		return nil
	}
	return resp
}

// Close releases the cache and publisher connections.
func (l *Lookup) Close() error {
	if l == nil {
		return nil
	}
	var errs []error
	if l.store != nil {
		if err := l.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close storage: %w", err))
		}
	}
	if err := l.fanout.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close publishers: %w", err))
	}
	return errors.Join(errs...)
}

func (l *Lookup) cached(key string) ([]byte, bool) {
	body, ok, err := l.store.Get(key)
	if err != nil {
		l.log.WarnObj("cache read failed", "cache_error", err.Error())
		return nil, false
	}
	return body, ok
}

func (l *Lookup) publish(ctx context.Context, address, source string, resp *domain.TaxQueryResponse) {
	if l.fanout.Size() == 0 {
		return
	}
	evt := publishers.NewEvent(address, source, resp)
	delivered, err := l.fanout.Publish(ctx, evt)
	if err != nil {
		l.log.ErrorObj("lookup event publish failed", "publish_error", map[string]any{
			"event_id":  evt.ID,
			"delivered": delivered,
			"error":     err.Error(),
		})
		return
	}
	l.log.DebugObj("lookup event published", "publish_meta", map[string]any{
		"event_id":  evt.ID,
		"delivered": delivered,
	})
}

func (l *Lookup) logger() logger.Logger {
	if l == nil || l.log == nil {
		return logger.NopLogger{}
	}
	return l.log
}
