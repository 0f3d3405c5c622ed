// sld2mapnik translates OGC Styled Layer Descriptor documents into Mapnik
// XML styles.
//
// Usage:
//
//	# Convert a style, writing the Mapnik document to stdout
//	sld2mapnik convert roads.sld
//
//	# Attach a shapefile datasource and pin the spatial reference
//	sld2mapnik convert roads.sld data/roads.shp --srid 3857 -o roads.xml
//
//	# Write hex colors instead of rgb()
//	sld2mapnik convert roads.sld --hex-colors
//
//	# Summarize the translated layers, styles and filters
//	sld2mapnik inspect roads.sld --format json
//
//	# Re-convert whenever the style changes
//	sld2mapnik watch roads.sld -o roads.xml
package main

func main() {
	Execute()
}
