package cli

import (
        "fmt"
        "strings"

        "prefixddns-cli/internal/editor"
        "prefixddns-cli/internal/templates"

        "github.com/charmbracelet/glamour"
        "github.com/spf13/cobra"
)

type templateRow struct {
        Key    string `json:"key"`
        Name   string `json:"name"`
        Method string `json:"webhook_method"`
        URL    string `json:"webhook_url"`
}

func newTemplatesCmd(a *App) *cobra.Command {
        cmd := &cobra.Command{
                Use:   "templates",
                Short: "Built-in task templates",
        }

        var details bool
        var width int
        listCmd := &cobra.Command{
                Use:   "list",
                Short: "List templates (empty first)",
                RunE: func(cmd *cobra.Command, args []string) error {
                        if details {
                                out, err := rendertemplatesMarkdown(width)
                                if err != nil {
                                        return writeErr(cmd, err)
                                }
                                _, err = fmt.Fprint(cmd.OutOrStdout(), out)
                                return err
                        }
                        rows := make([]templateRow, 0, len(templates.Keys()))
                        for _, k := range templates.Keys() {
                                t := templates.Get(k)
                                rows = append(rows, templateRow{Key: k, Name: templates.Name(k), Method: string(t.WebhookMethod), URL: t.WebhookURL})
                        }
                        return writeOut(cmd, a, map[string]any{"data": rows})
                },
        }
        listCmd.Flags().BoolVar(&details, "details", false, "Render every template as a document")
        listCmd.Flags().IntVar(&width, "width", 100, "Wrap width for --details")

        cmd.AddCommand(listCmd)
        return cmd
}

// templatesMarkdown documents every preset: method, URL, headers and body.
func templatesMarkdown() string {
        var b strings.Builder
        b.WriteString("# Task templates\n\n")
        b.WriteString("Placeholders: `{{combined_ip}}`, `{{original_ip}}`, `{{input_ip}}`, `{{prefix}}`.\n\n")
        for _, k := range templates.Keys() {
                if k == templates.EmptyKey {
                        continue
                }
                t := templates.Get(k)
                f := editor.FieldsFromTask(t)
                fmt.Fprintf(&b, "## %s (`%s`)\n\n", templates.Name(k), k)
                fmt.Fprintf(&b, "`%s %s`\n\n", t.WebhookMethod, t.WebhookURL)
                if f.Headers != "" {
                        fmt.Fprintf(&b, "Headers:\n\n```\n%s\n```\n\n", f.Headers)
                }
                if f.Body != "" {
                        fmt.Fprintf(&b, "Body:\n\n```\n%s\n```\n\n", f.Body)
                }
        }
        return b.String()
}

func rendertemplatesMarkdown(width int) (string, error) {
        if width < 20 {
                width = 20
        }
        r, err := glamour.NewTermRenderer(
                glamour.WithStandardStyle("notty"),
                glamour.WithWordWrap(width),
        )
        if err != nil {
                return "", err
        }
        return r.Render(templatesMarkdown())
}
