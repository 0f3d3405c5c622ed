package datasource

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// ProjectionReader derives a proj4 spatial reference for a datasource
// from its base path (without extension). ok is false when nothing could
// be derived; that is not an error.
type ProjectionReader interface {
	Projection(base string) (srs string, ok bool, err error)
}

// PrjReader reads <base>.prj sidecar files.
type PrjReader struct{}

// Projection implements ProjectionReader. A missing or unreadable .prj
// file yields ok == false.
func (PrjReader) Projection(base string) (string, bool, error) {
	data, err := os.ReadFile(base + ".prj")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read projection for %q: %w", base, err)
	}
	srs, ok := ProjectionFromPrj(string(data))
	return srs, ok, nil
}

// NoProjection never derives a projection.
type NoProjection struct{}

// Projection implements ProjectionReader.
func (NoProjection) Projection(string) (string, bool, error) {
	return "", false, nil
}

// EPSG returns the proj4 init string for an EPSG code.
func EPSG(code int) string {
	return fmt.Sprintf("+init=epsg:%d", code)
}

var (
	// authorityPattern matches AUTHORITY["EPSG","4326"] and the WKT2 form
	// ID["EPSG",4326].
	authorityPattern = regexp.MustCompile(`(?i)\b(?:AUTHORITY|ID)\s*\[\s*"EPSG"\s*,\s*"?(\d+)"?\s*\]`)

	// wktNames maps well-known ESRI WKT names to EPSG codes for .prj files
	// written without an authority.
	wktNames = map[string]int{
		"GCS_WGS_1984":                           4326,
		"WGS 84":                                 4326,
		"WGS_1984_Web_Mercator_Auxiliary_Sphere": 3857,
		"WGS 84 / Pseudo-Mercator":               3857,
	}
)

// ProjectionFromPrj converts .prj content into a proj4 string.
//
// Content that is already proj4 is returned as is. For WKT the
// AUTHORITY of the outermost coordinate system wins; nested authorities
// on datums or units are ignored. A WKT without a top-level authority is
// matched by its coordinate system name against a few common systems.
func ProjectionFromPrj(content string) (string, bool) {
	s := strings.TrimSpace(content)
	if s == "" {
		return "", false
	}
	if strings.HasPrefix(s, "+") {
		return strings.Join(strings.Fields(s), " "), true
	}

	if code, ok := topLevelAuthority(s); ok {
		return EPSG(code), true
	}

	if name, ok := wktName(s); ok {
		if code, ok := wktNames[name]; ok {
			return EPSG(code), true
		}
	}
	return "", false
}

// topLevelAuthority returns the EPSG code of an AUTHORITY clause that sits
// directly inside the outermost WKT node.
func topLevelAuthority(wkt string) (int, bool) {
	for _, loc := range authorityPattern.FindAllStringSubmatchIndex(wkt, -1) {
		if bracketDepth(wkt[:loc[0]]) != 1 {
			continue
		}
		if code, err := strconv.Atoi(wkt[loc[2]:loc[3]]); err == nil {
			return code, true
		}
	}
	return 0, false
}

// bracketDepth returns the nesting depth at the end of s, ignoring
// brackets inside quoted strings.
func bracketDepth(s string) int {
	depth := 0
	quoted := false
	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[' || r == '(':
			depth++
		case r == ']' || r == ')':
			depth--
		}
	}
	return depth
}

// wktName returns the quoted name of the outermost WKT node.
func wktName(wkt string) (string, bool) {
	start := strings.IndexByte(wkt, '"')
	if start < 0 {
		return "", false
	}
	end := strings.IndexByte(wkt[start+1:], '"')
	if end < 0 {
		return "", false
	}
	return wkt[start+1 : start+1+end], true
}
