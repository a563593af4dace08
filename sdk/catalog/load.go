package catalog

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// maxCatalogSize bounds how much of a remote document is read.
const maxCatalogSize = 4 << 20

// LoadFile reads and parses a catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog %s", path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.WithMessagef(err, "catalog %s", path)
	}
	return c, nil
}

// Fetch downloads and parses a catalog over HTTP. A nil client uses http.DefaultClient.
func Fetch(ctx context.Context, client *http.Client, url string) (*Catalog, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "build request for %s", url)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch catalog %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetch catalog %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogSize))
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog %s", url)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.WithMessagef(err, "catalog %s", url)
	}
	return c, nil
}

// Load fetches location over HTTP when it is an http(s) URL and reads it from disk otherwise.
func Load(ctx context.Context, location string) (*Catalog, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return Fetch(ctx, nil, location)
	}
	return LoadFile(location)
}
