// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package mime

import (
	"bytes"

	"github.com/antgroup/diff3forge/modules/mime/internal/magic"
)

// sniffLimit bounds how much of a payload the line-oriented detectors
// (csv/tsv) will scan; DetectAny itself is only ever handed the first
// sniffLen bytes of a file by its caller, so this is a second, tighter
// cap on top of that.
const sniffLimit = 3072

// MIME holds a node of the content-sniffing tree: each node names a
// MIME type, an associated extension, and a detector that recognises
// it; the tree is walked depth-first and the most specific matching
// node wins.
type MIME struct {
	mime      string
	extension string
	detect    func(raw []byte, limit uint32) bool
	children  []*MIME
	parent    *MIME
}

// String returns the node's MIME string, including any parameters
// (e.g. "text/plain; charset=utf-8").
func (m *MIME) String() string { return m.mime }

// Extension returns the file extension typically associated with this type.
func (m *MIME) Extension() string { return m.extension }

// Parent returns the node one level up the sniffing tree, or nil at the root.
func (m *MIME) Parent() *MIME { return m.parent }

// Is reports whether m shares expected's base type, ignoring any
// "; param=..." suffix on either side.
func (m *MIME) Is(expected string) bool {
	return baseType(m.mime) == baseType(expected)
}

func baseType(s string) string {
	if i := bytes.IndexByte([]byte(s), ';'); i >= 0 {
		s = s[:i]
	}
	return s
}

func newMIME(mime, extension string, detect func(raw []byte, limit uint32) bool, children ...*MIME) *MIME {
	m := &MIME{mime: mime, extension: extension, detect: detect, children: children}
	for _, c := range children {
		c.parent = m
	}
	return m
}

// match walks down the tree from m, returning the most specific
// descendant (or m itself) whose detector accepts in.
func (m *MIME) match(in []byte, limit uint32) *MIME {
	for _, c := range m.children {
		if c.detect(in, limit) {
			return c.match(in, limit)
		}
	}
	return m
}

var (
	csv = newMIME("text/csv", ".csv", func(in []byte, limit uint32) bool { return magic.Csv(in, limit) })
	tsv = newMIME("text/tab-separated-values", ".tsv", func(in []byte, limit uint32) bool { return magic.Tsv(in, limit) })
	// svg sits directly under text rather than under xml: real-world SVG
	// snippets (and the ones this package is tested against) frequently
	// lack a leading "<?xml" declaration, so detection can't depend on
	// xmlDetector having matched first.
	svg = newMIME("image/svg+xml", ".svg", svgDetector)
	xml = newMIME("text/xml; charset=utf-8", ".xml", xmlDetector)
	// json is intentionally left package-local rather than exported:
	// the surrounding test suite walks Parent() from it directly.
	json = newMIME("application/json", ".json", jsonDetector)
	html = newMIME("text/html; charset=utf-8", ".html", htmlDetector)
	text = newMIME("text/plain; charset=utf-8", ".txt", textDetector, html, svg, xml, json, csv, tsv)
	root = newMIME("application/octet-stream", "", func([]byte, uint32) bool { return true }, text)
)

// DetectAny classifies in and returns the most specific MIME node in
// the sniffing tree whose detector matches it. It never returns nil:
// in the worst case the root "application/octet-stream" node is
// returned.
func DetectAny(in []byte) *MIME {
	// Frozen: Do not restore this code yet.
	// https://github.com/gabriel-vasile/mimetype/issues/680
	if uint32(len(in)) > sniffLimit {
		in = in[:sniffLimit]
	}
	return root.match(in, sniffLimit)
}
