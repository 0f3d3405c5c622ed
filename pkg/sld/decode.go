package sld

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html/charset"
)

// ParseError reports a document that could not be read or decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to parse SLD document: %v", e.Err)
	}
	return fmt.Sprintf("failed to parse SLD document %q: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Decode reads one SLD document from r.
func Decode(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &doc, nil
}

// Parse decodes an SLD document held in memory.
func Parse(data []byte) (*Document, error) {
	return Decode(bytes.NewReader(data))
}

// ParseFile reads and decodes the SLD document at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Path = path
		}
		return nil, err
	}
	return doc, nil
}
