// Package datasource resolves datasource paths into Mapnik datasource
// descriptions and derives their spatial reference from sidecar .prj
// files.
package datasource

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"mercator-hq/sld2mapnik/pkg/mapnik"
)

// ErrUnsupported is returned for paths whose extension has no registered
// Mapnik plugin.
var ErrUnsupported = errors.New("unsupported datasource")

// Plugin names a Mapnik input plugin.
type Plugin string

const (
	PluginShape   Plugin = "shape"
	PluginGeoJSON Plugin = "geojson"
	PluginGDAL    Plugin = "gdal"
)

// plugins maps lower-case file extensions to input plugins.
var plugins = map[string]Plugin{
	".shp":     PluginShape,
	".geojson": PluginGeoJSON,
	".json":    PluginGeoJSON,
	".tif":     PluginGDAL,
	".tiff":    PluginGDAL,
	".vrt":     PluginGDAL,
}

// Extensions returns the recognised extensions in sorted order.
func Extensions() []string {
	exts := make([]string, 0, len(plugins))
	for ext := range plugins {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Source is a resolved datasource.
type Source struct {
	// Path is the absolute path of the file.
	Path string

	// Base is Path without its extension. Sidecar files such as .prj are
	// looked up next to it.
	Base string

	Plugin Plugin
}

// Resolve maps path to a Source by its extension.
func Resolve(path string) (*Source, error) {
	ext := strings.ToLower(filepath.Ext(path))
	plugin, ok := plugins[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q (recognised extensions: %s)",
			ErrUnsupported, path, strings.Join(Extensions(), ", "))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve datasource %q: %w", path, err)
	}

	return &Source{
		Path:   abs,
		Base:   strings.TrimSuffix(abs, filepath.Ext(abs)),
		Plugin: plugin,
	}, nil
}

// Mapnik returns the datasource description attached to layers. The shape
// plugin takes the base path without extension; the others take the file.
func (s *Source) Mapnik() *mapnik.Datasource {
	file := s.Path
	if s.Plugin == PluginShape {
		file = s.Base
	}
	return &mapnik.Datasource{Parameters: []mapnik.Parameter{
		{Name: "type", Value: string(s.Plugin)},
		{Name: "file", Value: file},
	}}
}
