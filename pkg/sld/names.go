package sld

import "encoding/xml"

// XML namespaces recognised by the decoder.
const (
	NamespaceSLD = "http://www.opengis.net/sld"
	NamespaceSE  = "http://www.opengis.net/se"
	NamespaceOGC = "http://www.opengis.net/ogc"
)

// SymbolizerKind identifies a symbolizer element by qualified name.
type SymbolizerKind int

const (
	SymbolizerUnknown SymbolizerKind = iota
	SymbolizerLine
	SymbolizerPolygon
	SymbolizerPoint
	SymbolizerText
	SymbolizerRaster
)

var symbolizerKindNames = map[SymbolizerKind]string{
	SymbolizerUnknown: "unknown",
	SymbolizerLine:    "line",
	SymbolizerPolygon: "polygon",
	SymbolizerPoint:   "point",
	SymbolizerText:    "text",
	SymbolizerRaster:  "raster",
}

// String returns the lower-case kind name.
func (k SymbolizerKind) String() string {
	if name, ok := symbolizerKindNames[k]; ok {
		return name
	}
	return "unknown"
}

var symbolizerKinds = map[xml.Name]SymbolizerKind{
	{Space: NamespaceSLD, Local: "LineSymbolizer"}:    SymbolizerLine,
	{Space: NamespaceSLD, Local: "PolygonSymbolizer"}: SymbolizerPolygon,
	{Space: NamespaceSLD, Local: "PointSymbolizer"}:   SymbolizerPoint,
	{Space: NamespaceSLD, Local: "TextSymbolizer"}:    SymbolizerText,
	{Space: NamespaceSLD, Local: "RasterSymbolizer"}:  SymbolizerRaster,
	{Space: NamespaceSE, Local: "LineSymbolizer"}:     SymbolizerLine,
	{Space: NamespaceSE, Local: "PolygonSymbolizer"}:  SymbolizerPolygon,
	{Space: NamespaceSE, Local: "PointSymbolizer"}:    SymbolizerPoint,
	{Space: NamespaceSE, Local: "TextSymbolizer"}:     SymbolizerText,
	{Space: NamespaceSE, Local: "RasterSymbolizer"}:   SymbolizerRaster,
}

// KindOf returns the symbolizer kind for a qualified element name.
// Names outside the sld and se namespaces are SymbolizerUnknown.
func KindOf(name xml.Name) SymbolizerKind {
	return symbolizerKinds[name]
}
