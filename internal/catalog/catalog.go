// Package catalog provides the product seed the engine is constructed from:
// an embedded default catalog plus a loader for packed seed files produced
// by catalog-pack.
package catalog

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	_ "embed"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront/internal/domain/product"
)

//go:embed seed.json
var seedJSON []byte

// entry is the wire form of a catalog product.
type entry struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"image_url,omitempty"`
}

// Load parses the embedded default catalog.
func Load() ([]product.Product, error) {
	products, err := Parse(seedJSON)
	if err != nil {
		return nil, errors.Wrap(err, "embedded seed")
	}
	return products, nil
}

// LoadFile reads a catalog seed from disk. Files ending in .gz are
// decompressed with pgzip before parsing.
func LoadFile(path string) ([]product.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "gzip reader for %s", path)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	products, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return products, nil
}

// Parse decodes and validates a JSON catalog document.
func Parse(data []byte) ([]product.Product, error) {
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}

	seen := make(map[string]struct{}, len(entries))
	products := make([]product.Product, 0, len(entries))
	for i, e := range entries {
		if err := validate(e); err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, errors.Errorf("entry %d: duplicate product id %q", i, e.ID)
		}
		seen[e.ID] = struct{}{}

		products = append(products, product.Product{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Price:       e.Price,
			Category:    product.Category(e.Category),
			Stock:       e.Stock,
			ImageURL:    e.ImageURL,
		})
	}
	return products, nil
}

// Marshal encodes products back into the seed wire form. Used by the
// catalog-pack tool to write merged seeds.
func Marshal(products []product.Product) ([]byte, error) {
	entries := make([]entry, len(products))
	for i, p := range products {
		entries[i] = entry{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Category:    string(p.Category),
			Stock:       p.Stock,
			ImageURL:    p.ImageURL,
		}
	}
	return json.MarshalIndent(entries, "", "  ")
}

func validate(e entry) error {
	if e.ID == "" {
		return errors.New("missing product id")
	}
	if e.Name == "" {
		return errors.Errorf("product %s: missing name", e.ID)
	}
	if !e.Price.IsPositive() {
		return errors.Errorf("product %s: price must be positive, got %s", e.ID, e.Price)
	}
	if e.Stock < 0 {
		return errors.Errorf("product %s: negative stock %d", e.ID, e.Stock)
	}
	if !product.Category(e.Category).Valid() {
		return errors.Errorf("product %s: unknown category %q", e.ID, e.Category)
	}
	return nil
}
