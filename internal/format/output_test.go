package format

import (
        "bytes"
        "strings"
        "testing"
)

type sample struct {
        Name    string  `json:"name"`
        Body    *string `json:"webhook_body"`
        Enabled bool    `json:"enabled"`
}

func TestWriteJSONCompactAndPretty(t *testing.T) {
        var buf bytes.Buffer
        if err := Write(&buf, sample{Name: "a"}, "json", false); err != nil {
                t.Fatalf("Write: %v", err)
        }
        if got := buf.String(); got != "{\"name\":\"a\",\"webhook_body\":null,\"enabled\":false}\n" {
                t.Fatalf("unexpected compact output: %q", got)
        }

        buf.Reset()
        if err := Write(&buf, sample{Name: "a"}, "", true); err != nil {
                t.Fatalf("Write: %v", err)
        }
        if !strings.Contains(buf.String(), "\n  \"name\": \"a\"") {
                t.Fatalf("expected indented json; got %q", buf.String())
        }
}

func TestWriteYAMLUsesJSONNames(t *testing.T) {
        var buf bytes.Buffer
        if err := Write(&buf, sample{Name: "duck", Enabled: true}, "yaml", false); err != nil {
                t.Fatalf("Write: %v", err)
        }
        out := buf.String()
        for _, want := range []string{"name: duck", "enabled: true", "webhook_body: null"} {
                if !strings.Contains(out, want) {
                        t.Fatalf("expected %q in output; got %q", want, out)
                }
        }
}

func TestWriteUnknownFormat(t *testing.T) {
        if err := Write(&bytes.Buffer{}, 1, "edn", false); err == nil {
                t.Fatalf("expected error for unknown format")
        }
}
