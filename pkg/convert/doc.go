// Package convert runs a complete SLD to Mapnik conversion: decode the
// SLD document, translate it, serialize the Mapnik XML and optionally
// rewrite rgb() colors as hex.
//
// Each conversion carries a run ID in its context so that log lines from
// every stage can be correlated. Output is buffered until the document is
// complete; a failed conversion writes nothing.
package convert
