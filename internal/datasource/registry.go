// Package datasource serves the map's data endpoints from local GeoJSON files
// and shapefiles.
package datasource

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
)

// Sentinel errors returned by Registry.
var (
	ErrUnknownEndpoint = eris.New("datasource: unknown endpoint")
	ErrNotConfigured   = eris.New("datasource: no files configured")
)

// Dataset is one data endpoint backed by one or more files.
type Dataset struct {
	Endpoint string
	Paths    []string
	// Multi serves one feature collection per file as a JSON array instead of
	// merging every file into a single collection.
	Multi bool
}

// Registry encodes datasets on demand and caches the payloads.
type Registry struct {
	datasets map[string]Dataset
	cache    *Cache
}

// NewRegistry creates a registry. cache may be nil.
func NewRegistry(cache *Cache, datasets ...Dataset) *Registry {
	r := &Registry{datasets: make(map[string]Dataset, len(datasets)), cache: cache}
	for _, d := range datasets {
		r.datasets[d.Endpoint] = d
	}
	return r
}

// Endpoints lists the configured endpoints, sorted.
func (r *Registry) Endpoints() []string {
	out := make([]string, 0, len(r.datasets))
	for e := range r.datasets {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// Payload returns the JSON document served at endpoint.
func (r *Registry) Payload(ctx context.Context, endpoint string) ([]byte, error) {
	d, ok := r.datasets[endpoint]
	if !ok {
		return nil, eris.Wrapf(ErrUnknownEndpoint, "endpoint %s", endpoint)
	}
	if len(d.Paths) == 0 {
		return nil, eris.Wrapf(ErrNotConfigured, "endpoint %s", endpoint)
	}

	if r.cache != nil {
		if data := r.cache.Get(endpoint); data != nil {
			return data, nil
		}
	}

	collections := make([]*geojson.FeatureCollection, 0, len(d.Paths))
	for _, p := range d.Paths {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "datasource: payload")
		}
		fc, err := ReadCollection(p)
		if err != nil {
			return nil, err
		}
		collections = append(collections, fc)
	}

	var doc any
	if d.Multi {
		doc = collections
	} else {
		doc = merge(collections)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, eris.Wrapf(err, "datasource: encode %s", endpoint)
	}

	zap.L().Debug("datasource: encoded payload",
		zap.String("endpoint", endpoint),
		zap.Int("files", len(d.Paths)),
		zap.Int("bytes", len(data)),
	)
	if r.cache != nil {
		r.cache.Put(endpoint, data)
	}
	return data, nil
}

// Open implements fetcher.Fetcher so layers can be loaded straight from disk.
func (r *Registry) Open(ctx context.Context, endpoint string) (io.ReadCloser, error) {
	data, err := r.Payload(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// CacheStats returns payload cache statistics, or zero stats without a cache.
func (r *Registry) CacheStats() CacheStats {
	if r.cache == nil {
		return CacheStats{}
	}
	return r.cache.Stats()
}

// ReadCollection reads a .geojson/.json file or a .shp shapefile.
func ReadCollection(path string) (*geojson.FeatureCollection, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".shp":
		return ReadShapefile(path)
	case ".geojson", ".json":
		return ReadGeoJSON(path)
	default:
		return nil, eris.Errorf("datasource: unsupported file type %q", path)
	}
}

// ReadGeoJSON reads a feature collection from a GeoJSON file.
func ReadGeoJSON(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "datasource: read %s", path)
	}
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrapf(err, "datasource: decode %s", path)
	}
	if fc.Features == nil {
		fc.Features = []*geojson.Feature{}
	}
	return &fc, nil
}

func merge(collections []*geojson.FeatureCollection) *geojson.FeatureCollection {
	if len(collections) == 1 {
		return collections[0]
	}
	out := &geojson.FeatureCollection{Features: []*geojson.Feature{}}
	for _, fc := range collections {
		out.Features = append(out.Features, fc.Features...)
	}
	return out
}
