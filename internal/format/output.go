package format

import (
        "encoding/json"
        "fmt"
        "io"
)

// Formats lists the accepted --format values.
var Formats = []string{"json", "yaml"}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - yaml
func Write(w io.Writer, v any, format string, pretty bool) error {
        switch format {
        case "", "json":
                return WriteJSON(w, v, pretty)
        case "yaml", "yml":
                return WriteYAML(w, v)
        default:
                return fmt.Errorf("unknown format: %s", format)
        }
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
        var b []byte
        var err error
        if pretty {
                b, err = json.MarshalIndent(v, "", "  ")
        } else {
                b, err = json.Marshal(v)
        }
        if err != nil {
                return err
        }

        _, err = fmt.Fprintln(w, string(b))
        return err
}
