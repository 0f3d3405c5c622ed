// Package translate converts decoded SLD documents into the Mapnik model.
//
// The translation walks Layer, UserStyle, FeatureTypeStyle, Rule and
// Symbolizer in document order:
//
//	doc, err := sld.ParseFile("roads.sld")
//	if err != nil {
//		return err
//	}
//	m, err := translate.Build(doc, translate.Options{SRID: 3857})
//
// OGC filters compile to Mapnik expressions with CompileFilter. Every
// error is fatal; only unknown symbolizer elements are skipped, with a
// warning.
package translate
