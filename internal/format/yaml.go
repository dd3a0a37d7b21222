package format

import (
        "encoding/json"
        "io"

        "gopkg.in/yaml.v3"
)

// WriteYAML writes v as YAML.
//
// Values go through JSON first so the output uses the same field names as the
// server API (json tags) rather than Go field names.
func WriteYAML(w io.Writer, v any) error {
        b, err := json.Marshal(v)
        if err != nil {
                return err
        }
        var x any
        if err := json.Unmarshal(b, &x); err != nil {
                return err
        }

        enc := yaml.NewEncoder(w)
        enc.SetIndent(2)
        if err := enc.Encode(x); err != nil {
                return err
        }
        return enc.Close()
}
