// Package mapnik models the subset of a Mapnik map document produced by
// sld2mapnik and serializes it as Mapnik XML.
//
// The model is built in memory by the translator and written once with
// Marshal. FixHexColors is an optional post-pass over the serialized
// bytes that rewrites rgb() colors on symbolizers as hex triplets.
package mapnik
