// Package sld decodes OGC Styled Layer Descriptor documents into a typed tree.
//
// # Overview
//
// The decoder understands the subset of SLD 1.0 and Symbology Encoding 1.1
// that the translator consumes:
//   - NamedLayer and UserLayer elements with their UserStyles
//   - FeatureTypeStyle and CoverageStyle elements with their Rules
//   - Line, Polygon, Point, Text and Raster symbolizers
//   - OGC Filter-Encoding predicates (And, Or, binary comparisons, Between)
//
// Everything else is skipped while decoding. Filters are decoded once into
// the closed Predicate sum type. Consumers switch on the concrete node type
// instead of matching element names.
//
// # Usage
//
//	doc, err := sld.ParseFile("roads.sld")
//	if err != nil {
//	    return err
//	}
//	for _, layer := range doc.Layers() {
//	    fmt.Println(layer.Name)
//	}
//
// # Symbolizers
//
// Symbolizer elements are identified by their qualified name. The sld and se
// namespaces map onto the same SymbolizerKind. Unknown symbolizers are kept as
// UnknownSymbolizer nodes so that callers can report and skip them.
//
// # Encodings
//
// Documents that declare a non-UTF-8 encoding (ISO-8859-1 is common for SLDs
// exported from desktop GIS tools) are transcoded through
// golang.org/x/net/html/charset.
package sld
