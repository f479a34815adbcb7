package io

import (
	_ "embed"

	"github.com/matzehuels/mosaic/pkg/layout"
)

//go:embed default.json
var defaultDocument []byte

// DefaultJSON returns the sample document as JSON.
func DefaultJSON() []byte {
	return append([]byte(nil), defaultDocument...)
}

// DefaultDocument returns the sample two-row document with editable content.
func DefaultDocument() *layout.Tree {
	t, err := Unmarshal(defaultDocument, Options{})
	if err != nil {
		panic("io: embedded default document: " + err.Error())
	}
	return t
}
