// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/company-research/pkg/types"
)

// WriteJSON writes rep as indented JSON.
func WriteJSON(w io.Writer, rep types.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// WriteYAML writes rep as YAML.
func WriteYAML(w io.Writer, rep types.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// Export writes rep to path in the format implied by its extension:
// .json, .yaml/.yml, .md, or .pdf.
func Export(path string, rep types.Report) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".pdf" {
		return SavePDF(path, rep)
	}

	var write func(io.Writer, types.Report) error
	switch ext {
	case ".json":
		write = WriteJSON
	case ".yaml", ".yml":
		write = WriteYAML
	case ".md":
		write = WriteMarkdown
	default:
		return fmt.Errorf("unsupported export format %q (want .json, .yaml, .md or .pdf)", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f, rep); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
