package cli

import (
        "prefixddns-cli/internal/model"

        "github.com/spf13/cobra"
)

type taskRow struct {
        ID              string       `json:"id"`
        Name            string       `json:"name"`
        Suffix          string       `json:"suffix"`
        Enabled         bool         `json:"enabled"`
        AllowAPITrigger bool         `json:"allow_api_trigger"`
        Method          model.Method `json:"webhook_method"`
        URL             string       `json:"webhook_url"`
}

func newTasksCmd(a *App) *cobra.Command {
        cmd := &cobra.Command{
                Use:   "tasks",
                Short: "Inspect configured tasks",
        }

        var full bool
        listCmd := &cobra.Command{
                Use:   "list",
                Short: "List tasks in server order",
                RunE: func(cmd *cobra.Command, args []string) error {
                        cfg, err := fetchConfig(cmd.Context(), a)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        if full {
                                return writeOut(cmd, a, map[string]any{"data": cfg.Tasks})
                        }
                        rows := make([]taskRow, 0, len(cfg.Tasks))
                        for _, t := range cfg.Tasks {
                                rows = append(rows, taskRow{
                                        ID:              t.ID,
                                        Name:            t.Name,
                                        Suffix:          t.Suffix,
                                        Enabled:         t.Enabled,
                                        AllowAPITrigger: t.AllowAPITrigger,
                                        Method:          t.WebhookMethod,
                                        URL:             t.WebhookURL,
                                })
                        }
                        return writeOut(cmd, a, map[string]any{"data": rows})
                },
        }
        listCmd.Flags().BoolVar(&full, "full", false, "Include headers and body")

        showCmd := &cobra.Command{
                Use:   "show NAME",
                Short: "Show one task",
                Args:  cobra.ExactArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        cfg, err := fetchConfig(cmd.Context(), a)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        i := cfg.FindTaskByName(args[0])
                        if i < 0 {
                                return writeErr(cmd, errNotFound("task", args[0]))
                        }
                        return writeOut(cmd, a, map[string]any{"data": cfg.Tasks[i]})
                },
        }

        cmd.AddCommand(listCmd)
        cmd.AddCommand(showCmd)
        return cmd
}
