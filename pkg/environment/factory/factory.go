// Package factory builds environments from documents, files and readers.
//
// Unlike environment.FromJSON, the factory is lenient by default: gateways
// that cannot be added are skipped and recorded as warnings in the returned
// report. Structural decode errors always abort the load.
package factory

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caesium-lab/evacenv/pkg/environment"
	"github.com/caesium-lab/evacenv/pkg/jsondoc"
	"github.com/caesium-lab/evacenv/pkg/validation"
)

// ErrUnknownFormat is returned for a file extension or format name that is
// neither JSON nor YAML.
var ErrUnknownFormat = errors.New("unknown document format")

// Format selects the text encoding of a document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat resolves a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Options controls how documents are turned into environments.
type Options struct {
	// Strict aborts the load on the first rejected gateway instead of
	// skipping it with a warning.
	Strict bool
	// Legacy reads the older flat obstacle schema with X/Y point keys.
	Legacy bool
}

// Build decodes an environment document and validates the result. The
// report carries one warning per skipped gateway followed by the findings of
// validation.ValidateEnvironment.
func Build(doc *jsondoc.Object, opts Options) (*environment.Environment, *validation.Report, error) {
	if opts.Legacy {
		converted, err := FromLegacy(doc)
		if err != nil {
			return nil, nil, err
		}
		doc = converted
	}

	report := validation.NewReport()
	env, err := environment.Decode(doc, func(g environment.Gateway, err error) error {
		if opts.Strict {
			return err
		}
		report.AddWarning(validation.Result{
			Level:       validation.LevelDocument,
			Message:     fmt.Sprintf("gateway %d could not be added: %v", g.ID, err),
			Path:        fmt.Sprintf("gateways[id=%d]", g.ID),
			ActualValue: g.String(),
		})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	report.Merge(validation.ValidateEnvironment(env))
	return env, report, nil
}

// Parse decodes document text in the given format and builds it.
func Parse(data []byte, format Format, opts Options) (*environment.Environment, *validation.Report, error) {
	var (
		tree any
		err  error
	)
	switch format {
	case FormatJSON:
		tree, err = jsondoc.Parse(data)
	case FormatYAML:
		tree, err = jsondoc.FromYAML(data)
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, nil, err
	}
	doc, err := jsondoc.AsObject(tree)
	if err != nil {
		return nil, nil, err
	}
	return Build(doc, opts)
}

// Load reads the whole of r and builds it.
func Load(r io.Reader, format Format, opts Options) (*environment.Environment, *validation.Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading document: %w", environment.ErrIO, err)
	}
	return Parse(data, format, opts)
}

// LoadFile reads and builds the file at path, choosing the format from its
// extension.
func LoadFile(path string, opts Options) (*environment.Environment, *validation.Report, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", environment.ErrIO, err)
	}
	env, report, err := Parse(data, format, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return env, report, nil
}

// WriteFile stores env at path as pretty-printed JSON. An empty indent
// writes the compact form.
func WriteFile(path string, env *environment.Environment, indent string) error {
	var (
		text string
		err  error
	)
	if indent == "" {
		text, err = env.JSONSerialized()
	} else {
		text, err = env.JSONPrettyPrinted(indent)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("%w: %w", environment.ErrIO, err)
	}
	return nil
}
