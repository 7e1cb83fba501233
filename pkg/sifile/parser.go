// Package sifile loads SI records from YAML or JSON files. A file holds
// either a single record or a list of records.
package sifile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/irisprep/pkg/si"
)

// Parser decodes the content of one file format.
type Parser interface {
	Parse(ctx context.Context, content []byte) ([]si.Record, error)
	SupportsFileExtension(ext string) bool
}

type YAMLParser struct{}

func (YAMLParser) Parse(ctx context.Context, content []byte) ([]si.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	if len(doc.Content) == 0 {
		return nil, ErrNoRecords
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var recs []si.Record
		if err := root.Decode(&recs); err != nil {
			return nil, errors.Join(ErrFailedToParseYAML, err)
		}
		return recs, nil
	case yaml.MappingNode:
		var rec si.Record
		if err := root.Decode(&rec); err != nil {
			return nil, errors.Join(ErrFailedToParseYAML, err)
		}
		return []si.Record{rec}, nil
	default:
		return nil, fmt.Errorf("%w: expected a record or a list of records at line %d", ErrFailedToParseYAML, root.Line)
	}
}

func (YAMLParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "yaml") || strings.EqualFold(ext, "yml")
}

type JSONParser struct{}

func (JSONParser) Parse(ctx context.Context, content []byte) ([]si.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	content = bytes.TrimSpace(content)
	if len(content) == 0 {
		return nil, ErrNoRecords
	}

	if content[0] == '[' {
		var recs []si.Record
		if err := json.Unmarshal(content, &recs); err != nil {
			return nil, errors.Join(ErrFailedToParseJSON, err)
		}
		return recs, nil
	}

	var rec si.Record
	if err := json.Unmarshal(content, &rec); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	return []si.Record{rec}, nil
}

func (JSONParser) SupportsFileExtension(ext string) bool {
	return strings.EqualFold(strings.TrimPrefix(ext, "."), "json")
}

var parsers = []Parser{YAMLParser{}, JSONParser{}}

// ParserFor returns the parser registered for the extension of path.
func ParserFor(path string) (Parser, error) {
	ext := filepath.Ext(path)
	for _, p := range parsers {
		if p.SupportsFileExtension(ext) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// Load reads the records in path. Records without a file name get the
// base name of path.
func Load(ctx context.Context, path string) ([]si.Record, error) {
	p, err := ParserFor(path)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadFile, err)
	}

	recs, err := p.Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoRecords)
	}

	name := filepath.Base(path)
	for i := range recs {
		if recs[i].FileName == "" {
			recs[i].FileName = name
		}
	}
	return recs, nil
}
