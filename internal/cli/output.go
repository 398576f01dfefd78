package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/glorpus-work/revctl/pkg/config"
	"github.com/glorpus-work/revctl/pkg/report"
)

// Output formats accepted by --output and settings.output_format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// Markers of the text listing.
const (
	currentMarker = "| => "
	otherMarker   = "|    "
	listFooter    = "# => - current revision"
)

// renderResult writes a successful outcome to w.
func renderResult(w io.Writer, format string, res *report.Result) error {
	switch format {
	case formatJSON, formatYAML:
		return encode(w, format, res)
	}

	_, _ = fmt.Fprintln(w, res.Message)
	if len(res.Revisions) > 0 || res.Key == "" {
		_, _ = fmt.Fprintln(w)
		for _, entry := range res.Revisions {
			marker := otherMarker
			if entry.Current {
				marker = currentMarker
			}
			_, _ = fmt.Fprintf(w, "%s%s\n", marker, entry.Key)
		}
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, listFooter)
		return nil
	}

	_, _ = fmt.Fprintf(w, "Revision: %s\n", res.Key)
	if res.Hint != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", res.Hint)
	}
	return nil
}

// renderFailure writes a failed outcome as a document for the structured
// formats. Text output is left to PrintError.
func renderFailure(w io.Writer, format string, err error) {
	var reportErr *report.Error
	if !errors.As(err, &reportErr) {
		return
	}
	if format == formatJSON || format == formatYAML {
		_ = encode(w, format, reportErr)
	}
}

// PrintError writes err to w for the user, with the suggestion of a
// failed outcome when there is one.
func PrintError(w io.Writer, err error) {
	var reportErr *report.Error
	if errors.As(err, &reportErr) {
		_, _ = fmt.Fprintln(w, reportErr.Message)
		if reportErr.Err != nil {
			_, _ = fmt.Fprintf(w, "Cause: %v\n", reportErr.Err)
		}
		if reportErr.Suggestion != "" {
			_, _ = fmt.Fprintf(w, "\n%s\n", reportErr.Suggestion)
		}
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}

func encode(w io.Writer, format string, v any) error {
	if format == formatYAML {
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(config.YAMLIndent)
		defer func() { _ = encoder.Close() }()
		return encoder.Encode(v)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
