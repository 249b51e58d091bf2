// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package mime

import (
	"bytes"
	stdjson "encoding/json"
	"unicode/utf8"
)

// skipWS returns in with any leading BOM and ASCII whitespace dropped.
func skipWS(in []byte) []byte {
	in = bytes.TrimPrefix(in, []byte{0xEF, 0xBB, 0xBF})
	return bytes.TrimLeft(in, " \t\r\n")
}

// skipMarkupNoise drops leading whitespace, XML/HTML comments, and a
// DOCTYPE declaration, mirroring the handful of bytes a real browser
// sniffer skips before looking for the first meaningful tag.
func skipMarkupNoise(in []byte) []byte {
	for {
		trimmed := skipWS(in)
		switch {
		case bytes.HasPrefix(trimmed, []byte("<!--")):
			end := bytes.Index(trimmed, []byte("-->"))
			if end == -1 {
				return nil
			}
			in = trimmed[end+len("-->"):]
		case bytes.HasPrefix(bytes.ToUpper(trimmed), []byte("<!DOCTYPE")):
			end := bytes.IndexByte(trimmed, '>')
			if end == -1 {
				return nil
			}
			in = trimmed[end+1:]
		default:
			return trimmed
		}
	}
}

func hasCIPrefix(in []byte, prefix string) bool {
	if len(in) < len(prefix) {
		return false
	}
	return bytes.EqualFold(in[:len(prefix)], []byte(prefix))
}

func xmlDetector(in []byte, _ uint32) bool {
	trimmed := skipWS(in)
	return hasCIPrefix(trimmed, "<?xml")
}

func svgDetector(in []byte, _ uint32) bool {
	trimmed := skipMarkupNoise(in)
	if trimmed == nil {
		return false
	}
	if hasCIPrefix(trimmed, "<?xml") {
		if end := bytes.IndexByte(trimmed, '>'); end != -1 {
			trimmed = skipMarkupNoise(trimmed[end+1:])
		}
	}
	return trimmed != nil && hasCIPrefix(trimmed, "<svg")
}

func jsonDetector(in []byte, _ uint32) bool {
	trimmed := skipWS(in)
	if len(trimmed) == 0 {
		return false
	}
	switch trimmed[0] {
	case '{', '[':
		return stdjson.Valid(trimmed)
	default:
		return false
	}
}

// htmlSignatures are the tag prefixes a real HTML sniffer checks for,
// in order, case-insensitively, each optionally followed by a tag
// terminator (space, '>', or '/').
var htmlSignatures = []string{
	"<!doctype html", "<html", "<head", "<script", "<iframe", "<h1",
	"<div", "<font", "<table", "<a ", "<style", "<title", "<b>",
	"<body", "<br", "<p>",
}

func htmlDetector(in []byte, _ uint32) bool {
	trimmed := skipMarkupNoise(in)
	if trimmed == nil {
		return false
	}
	lower := bytes.ToLower(trimmed)
	for _, sig := range htmlSignatures {
		if bytes.HasPrefix(lower, []byte(sig)) {
			return true
		}
	}
	return false
}

// textDetector accepts payloads that are valid UTF-8 and free of NUL
// bytes; anything else is left classified as application/octet-stream.
func textDetector(in []byte, _ uint32) bool {
	if bytes.IndexByte(in, 0) != -1 {
		return false
	}
	return utf8.Valid(in)
}
