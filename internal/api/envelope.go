package api

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/EJPOP/trade-system/internal/model"
)

// envelopeCandidates are the known spellings of the KRX response envelope
// key, probed in order. The upstream varies the name by dataset and API
// version without a stable contract.
var envelopeCandidates = []string{
	"OutBlock_1", "OUTBLOCK_1", "outBlock1", "out_block1",
	"OutBlock1", "output", "result", "data",
}

const parseErrorHeadLen = 300

// ParseError reports a response that is not valid JSON. It carries the
// request path and body plus the head of the response text so the call can
// be reproduced against the upstream directly.
type ParseError struct {
	Path string
	Body string
	Head string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse krx response: path=%s, body=%s, head=%q: %v", e.Path, e.Body, e.Head, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StructureError reports valid JSON in which no record array could be
// located. It is a persistent contract mismatch, never retried.
type StructureError struct {
	Path     string
	Body     string
	RootType string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("unexpected krx response structure: path=%s, body=%s, rootType=%s", e.Path, e.Body, e.RootType)
}

// extractRecords locates the record array in a decoded response and returns
// its elements in response order.
//
// Fallback layers: a bare array root is used as-is; an object root is probed
// for the candidate envelope keys in order; failing that, the object's first
// array-valued field in declaration order wins.
func extractRecords(text, path, body string) ([]model.RawRecord, error) {
	var root json.RawMessage
	if err := json.Unmarshal([]byte(text), &root); err != nil {
		return nil, &ParseError{Path: path, Body: body, Head: head(text), Err: err}
	}

	switch jsonType(root) {
	case "ARRAY":
		return unmarshalRecords(root, text, path, body)

	case "OBJECT":
		arr, err := findRecordArray(root)
		if err != nil {
			return nil, &ParseError{Path: path, Body: body, Head: head(text), Err: err}
		}
		if arr != nil {
			return unmarshalRecords(arr, text, path, body)
		}
		return nil, &StructureError{Path: path, Body: body, RootType: "OBJECT"}

	default:
		return nil, &StructureError{Path: path, Body: body, RootType: jsonType(root)}
	}
}

// findRecordArray scans an object root for the record array. It walks the
// fields with a token decoder because the candidate-miss fallback depends on
// declaration order, which a map would destroy.
func findRecordArray(root json.RawMessage) (json.RawMessage, error) {
	dec := json.NewDecoder(strings.NewReader(string(root)))
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, err
	}

	byKey := make(map[string]json.RawMessage)
	var firstArray json.RawMessage

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key token %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}

		if jsonType(value) != "ARRAY" {
			continue
		}
		if _, seen := byKey[key]; !seen {
			byKey[key] = value
		}
		if firstArray == nil {
			firstArray = value
		}
	}

	for _, k := range envelopeCandidates {
		if arr, ok := byKey[k]; ok {
			return arr, nil
		}
	}
	return firstArray, nil
}

func unmarshalRecords(arr json.RawMessage, text, path, body string) ([]model.RawRecord, error) {
	var records []model.RawRecord
	if err := json.Unmarshal(arr, &records); err != nil {
		return nil, &ParseError{Path: path, Body: body, Head: head(text), Err: err}
	}
	return records, nil
}

func jsonType(raw json.RawMessage) string {
	t := strings.TrimSpace(string(raw))
	if t == "" {
		return "MISSING"
	}
	switch t[0] {
	case '[':
		return "ARRAY"
	case '{':
		return "OBJECT"
	case '"':
		return "STRING"
	case 't', 'f':
		return "BOOLEAN"
	case 'n':
		return "NULL"
	default:
		return "NUMBER"
	}
}

func head(s string) string {
	if len(s) > parseErrorHeadLen {
		return s[:parseErrorHeadLen]
	}
	return s
}
