package reporter

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/acarl005/stripansi"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText  Format = "text"
	FormatTree  Format = "tree"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

var formats = []Format{FormatText, FormatTree, FormatTable, FormatJSON, FormatYAML}

func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}

	for _, f := range formats {
		if strings.EqualFold(string(f), s) {
			return f, nil
		}
	}

	return "", errors.Errorf("unknown report format '%s'", s)
}

// Renders rep in the given format.
func Render(w io.Writer, rep Report, format Format) error {
	switch format {
	case FormatText, "":
		_, err := io.WriteString(w, RenderText(rep))
		return err
	case FormatTree:
		return RenderTree(w, rep)
	case FormatTable:
		_, err := io.WriteString(w, RenderTable(rep)+"\n")
		return err
	case FormatJSON:
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal report to JSON")
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return errors.Wrap(err, "failed to marshal report to YAML")
		}
		return enc.Close()
	default:
		return errors.Errorf("unknown report format '%s'", format)
	}
}

// Renders rep without colour escape codes.
func RenderPlain(rep Report, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, rep, format); err != nil {
		return nil, err
	}

	return []byte(stripansi.Strip(buf.String())), nil
}

// Writes the plain rendering of rep to path.
func WriteFile(path string, rep Report, format Format) error {
	data, err := RenderPlain(rep, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write report to '%s'", path)
	}

	return nil
}
