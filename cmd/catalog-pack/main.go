// Command catalog-pack merges one or more catalog seed files (.json or
// .json.gz) into a single gzip-compressed catalog ready to be served via the
// catalog-path option.
//
// Usage:
//
//	catalog-pack -out catalog.json.gz shard1.json shard2.json.gz ...
//
// Shards are read concurrently. When the same product ID appears in several
// shards, the shard listed first wins.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/storefront/internal/catalog"
	"github.com/xenking/storefront/internal/domain/product"
)

func main() {
	var out string
	flag.StringVar(&out, "out", "catalog.json.gz", "output file path")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: catalog-pack -out <file> <shard>...")
		os.Exit(2)
	}

	lg := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(lg, out, flag.Args()); err != nil {
		lg.Error("pack failed", "error", err)
		os.Exit(1)
	}
}

func run(lg *slog.Logger, out string, shards []string) error {
	results := make([][]product.Product, len(shards))

	var g errgroup.Group
	for i, path := range shards {
		g.Go(func() error {
			products, err := catalog.LoadFile(path)
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			lg.Info("shard loaded", "path", path, "products", len(products))
			results[i] = products
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Merge in shard order; first occurrence of an ID wins.
	seen := make(map[string]struct{})
	var merged []product.Product
	for _, products := range results {
		for _, p := range products {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			merged = append(merged, p)
		}
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ID < merged[j].ID })

	data, err := catalog.Marshal(merged)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()

	zw := pgzip.NewWriter(f)
	if _, err := zw.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close gzip stream: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}

	lg.Info("catalog packed", "path", out, "products", len(merged))
	return nil
}
