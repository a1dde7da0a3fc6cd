package dataset

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/hydrosim/hydrosim-cli/internal/cache"
	"github.com/hydrosim/hydrosim-cli/internal/properties"
	"golang.org/x/oauth2/clientcredentials"
)

// CacheName is the cache folder holding downloaded csv bodies.
const CacheName = "datasets"

// Fetcher downloads csv files over HTTP with retries and keeps the bodies in a file cache.
type Fetcher struct {
	Client     *http.Client
	Retries    int
	RetryDelay time.Duration
	Cache      cache.CacheService[[]byte]
}

// NewFetcher uses OAuth2 client credentials when DATASET_CLIENT_ID is configured.
func NewFetcher(ctx context.Context) *Fetcher {
	return &Fetcher{
		Client:     httpClient(ctx),
		Retries:    3,
		RetryDelay: 10 * time.Second,
		Cache:      cache.NewFileCache[[]byte](CacheName, 24*time.Hour),
	}
}

func httpClient(ctx context.Context) *http.Client {
	if properties.DatasetClientID() == "" {
		return &http.Client{Timeout: 30 * time.Second}
	}
	conf := &clientcredentials.Config{
		ClientID:     properties.DatasetClientID(),
		ClientSecret: properties.DatasetClientSecret(),
		TokenURL:     properties.DatasetTokenURL(),
	}
	client := conf.Client(ctx)
	client.Timeout = 30 * time.Second
	return client
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var key string
	if f.Cache != nil {
		key = f.Cache.GenerateKey(url)
		if data, ok := f.Cache.Get(key); ok {
			return data, nil
		}
	}

	retries := f.Retries
	if retries < 1 {
		retries = 1
	}

	var lastErr error
	for attempt := 0; attempt < retries; attempt++ {
		if attempt > 0 {
			log.Printf("Failed to retrieve %s: %v. Retrying... (%d/%d)", url, lastErr, attempt, retries)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.RetryDelay):
			}
		}

		data, err := f.get(ctx, url)
		if err != nil {
			lastErr = err
			continue
		}

		if f.Cache != nil {
			if err := f.Cache.Set(key, data); err != nil {
				log.Printf("Warning: failed to cache %s: %v", url, err)
			}
		}
		return data, nil
	}

	return nil, fmt.Errorf("failed to retrieve %s after %d attempts: %w", url, retries, lastErr)
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return data, nil
}

// FetchTable downloads and parses a sensor csv file.
func (f *Fetcher) FetchTable(ctx context.Context, url string) (*Table, error) {
	data, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParseCSV(data)
}
