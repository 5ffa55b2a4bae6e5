// Package catalog supplies the product records used to build the assistant's
// system prompt.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

const (
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

// Placeholder is rendered into the system prompt when no catalog source is
// reachable. The assistant still starts, visibly degraded.
const Placeholder = "Error loading product data."

// Product is one catalog entry.
type Product struct {
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	SkinType    string   `json:"skin_type,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Loader fetches products from a remote REST source with a local file
// fallback. Either source may be absent.
type Loader struct {
	url       string
	apiKey    string
	localPath string
	http      *http.Client
	log       *zap.Logger
}

// NewLoader returns a catalog loader. url and localPath may each be empty.
func NewLoader(url, apiKey, localPath string, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		url:       url,
		apiKey:    apiKey,
		localPath: localPath,
		http:      &http.Client{},
		log:       log,
	}
}

// Load returns the product list and its JSON rendering for the prompt slot.
// Failures degrade: remote, then local file, then the placeholder text with
// an empty product list. Load never returns an error.
func (l *Loader) Load(ctx context.Context) ([]Product, string) {
	if l.url != "" {
		products, err := l.fetchRemote(ctx)
		if err != nil {
			l.log.Warn("remote catalog fetch failed", zap.Error(err))
		} else if len(products) > 0 {
			return products, renderJSON(products)
		}
	}

	if l.localPath != "" {
		products, err := l.loadLocal()
		if err != nil {
			l.log.Warn("local catalog load failed",
				zap.String("path", l.localPath),
				zap.Error(err))
		} else {
			return products, renderJSON(products)
		}
	}

	l.log.Warn("no catalog source available, starting with placeholder")
	return nil, Placeholder
}

func (l *Loader) fetchRemote(ctx context.Context) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if l.apiKey != "" {
		req.Header.Set("apikey", l.apiKey)
		req.Header.Set("Authorization", "Bearer "+l.apiKey)
	}

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var products []Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("parsing products: %w", err)
	}
	return products, nil
}

func (l *Loader) loadLocal() ([]Product, error) {
	data, err := os.ReadFile(l.localPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", l.localPath, err)
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", l.localPath, err)
	}
	return products, nil
}

func renderJSON(products []Product) string {
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return Placeholder
	}
	return string(data)
}
