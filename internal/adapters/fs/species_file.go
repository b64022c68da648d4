package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/bft-labs/speciesdiff/internal/domain"
	"github.com/bft-labs/speciesdiff/internal/ports"
)

// Format selects the decoder for an input file.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat validates a format name. Empty means auto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown input format %q (want auto, json, yaml or toml)", s)
	}
}

// SpeciesFileLoader implements ports.SpeciesSource for JSON, YAML and TOML
// mapping files.
type SpeciesFileLoader struct {
	format Format
}

// Option configures a SpeciesFileLoader.
type Option func(*SpeciesFileLoader)

// WithFormat forces a decoder instead of choosing one by file extension.
func WithFormat(f Format) Option {
	return func(l *SpeciesFileLoader) { l.format = f }
}

// NewSpeciesFileLoader creates a loader that picks the decoder by extension.
func NewSpeciesFileLoader(opts ...Option) *SpeciesFileLoader {
	l := &SpeciesFileLoader{format: FormatAuto}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.SpeciesSource = (*SpeciesFileLoader)(nil)

// Load reads path and returns the mapping values. JSON and YAML keep file
// order; TOML tables carry no order once decoded, so values follow key order.
func (l *SpeciesFileLoader) Load(ctx context.Context, path string) ([]domain.SpeciesName, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, domain.NotFound("loader.read", path, err)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var names []string
	switch l.formatFor(path) {
	case FormatYAML:
		names, err = decodeYAML(b)
	case FormatTOML:
		names, err = decodeTOML(b)
	default:
		names, err = decodeJSON(b)
	}
	if err != nil {
		return nil, domain.DataFormat("loader.decode", path, err)
	}

	out := make([]domain.SpeciesName, len(names))
	for i, n := range names {
		out[i] = domain.SpeciesName(n)
	}
	return out, nil
}

func (l *SpeciesFileLoader) formatFor(path string) Format {
	if l.format != "" && l.format != FormatAuto {
		return l.format
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// decodeJSON streams the top-level object so values keep their file order.
func decodeJSON(b []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("empty document")
		}
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("top-level value must be an object, got %v", tok)
	}

	var names orderedValues
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)

		var v *string
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		if v == nil {
			return nil, fmt.Errorf("key %q: value must be a string, got null", key)
		}
		names.set(key, *v)
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level object")
	}
	return names.list(), nil
}

func decodeYAML(b []byte) ([]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("empty document")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top-level value must be a mapping (line %d)", root.Line)
	}

	var names orderedValues
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if val.Kind == yaml.AliasNode && val.Alias != nil {
			val = val.Alias
		}
		if val.Kind != yaml.ScalarNode || val.ShortTag() != "!!str" {
			return nil, fmt.Errorf("key %q: value must be a string (line %d)", key.Value, val.Line)
		}
		names.set(key.Value, val.Value)
	}
	return names.list(), nil
}

func decodeTOML(b []byte) ([]string, error) {
	var m map[string]interface{}
	if err := toml.Unmarshal(b, &m); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	names := make([]string, 0, len(keys))
	for _, k := range keys {
		s, ok := m[k].(string)
		if !ok {
			return nil, fmt.Errorf("key %q: value must be a string, got %T", k, m[k])
		}
		names = append(names, s)
	}
	return names, nil
}

// orderedValues keeps values in first-seen key order. A repeated key
// replaces the earlier value in place, the way a decoded mapping would.
type orderedValues struct {
	index  map[string]int
	values []string
}

func (o *orderedValues) set(key, value string) {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		o.values[i] = value
		return
	}
	o.index[key] = len(o.values)
	o.values = append(o.values, value)
}

func (o *orderedValues) list() []string {
	if o.values == nil {
		return []string{}
	}
	return o.values
}
