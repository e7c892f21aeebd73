package pubgen

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/a-h/templ"
)

// writeComponent renders cmp and stores the result at path, creating parent
// directories. Nothing is written when rendering fails.
func writeComponent(ctx context.Context, path string, cmp templ.Component) error {
	var buf bytes.Buffer
	if err := cmp.Render(ctx, &buf); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return writeFile(path, buf.Bytes())
}

// writeXML encodes v as an indented XML document at path.
func writeXML(path string, v any) error {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	buf.WriteByte('\n')
	return writeFile(path, buf.Bytes())
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return outputError(path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return outputError(path, err)
	}
	return nil
}
