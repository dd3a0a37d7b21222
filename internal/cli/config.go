package cli

import (
        "context"
        "encoding/json"
        "os"
        "path/filepath"
        "strings"

        "prefixddns-cli/internal/app"
        "prefixddns-cli/internal/draft"
        "prefixddns-cli/internal/model"

        "github.com/spf13/cobra"
        "gopkg.in/yaml.v3"
)

func newConfigCmd(a *App) *cobra.Command {
        cmd := &cobra.Command{
                Use:   "config",
                Short: "Read and write the server configuration",
        }

        showCmd := &cobra.Command{
                Use:   "show",
                Short: "Print the server configuration",
                RunE: func(cmd *cobra.Command, args []string) error {
                        cfg, err := fetchConfig(cmd.Context(), a)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        return writeOut(cmd, a, map[string]any{"data": cfg})
                },
        }

        var dryRun bool
        pushCmd := &cobra.Command{
                Use:   "push FILE",
                Short: "Replace the server configuration with FILE (JSON or YAML)",
                Args:  cobra.ExactArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        cfg, err := readConfigFile(args[0])
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        if !dryRun {
                                if err := a.apiClient().SaveConfig(ctxOrBackground(cmd.Context()), cfg); err != nil {
                                        return writeErr(cmd, err)
                                }
                        }
                        return writeOut(cmd, a, map[string]any{
                                "data": map[string]any{"tasks": len(cfg.Tasks), "saved": !dryRun},
                        })
                },
        }
        pushCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate FILE without sending it")

        var logLimit string
        var runOnStartup string
        setCmd := &cobra.Command{
                Use:   "set-setting",
                Short: "Change the global server settings (log limit, run on startup)",
                RunE: func(cmd *cobra.Command, args []string) error {
                        if !cmd.Flags().Changed("log-limit") && !cmd.Flags().Changed("run-on-startup") {
                                return writeErr(cmd, errInvalidArgs("pass --log-limit and/or --run-on-startup"))
                        }
                        cfg, err := fetchConfig(cmd.Context(), a)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        store := draft.New(cfg)
                        limit := cfg.LogLimit
                        if cmd.Flags().Changed("log-limit") {
                                limit = app.ParseLogLimit(logLimit)
                        }
                        startup := cfg.RunOnStartup
                        if cmd.Flags().Changed("run-on-startup") {
                                b, err := parseBoolFlag("run-on-startup", runOnStartup)
                                if err != nil {
                                        return writeErr(cmd, err)
                                }
                                startup = b
                        }
                        store.ApplySettings(limit, startup)
                        out := store.Snapshot()
                        if err := a.apiClient().SaveConfig(ctxOrBackground(cmd.Context()), out); err != nil {
                                return writeErr(cmd, err)
                        }
                        return writeOut(cmd, a, map[string]any{
                                "data": map[string]any{"log_limit": out.LogLimit, "run_on_startup": out.RunOnStartup},
                        })
                },
        }
        setCmd.Flags().StringVar(&logLimit, "log-limit", "", "Log entries kept by the server (at least 1; invalid or 0 means 100)")
        setCmd.Flags().StringVar(&runOnStartup, "run-on-startup", "", "Run all tasks when the server starts (true|false)")

        cmd.AddCommand(showCmd)
        cmd.AddCommand(pushCmd)
        cmd.AddCommand(setCmd)
        return cmd
}

func ctxOrBackground(ctx context.Context) context.Context {
        if ctx == nil {
                return context.Background()
        }
        return ctx
}

// fetchConfig reads the server configuration over the client defaults, the same merge
// the dashboard does on startup.
func fetchConfig(ctx context.Context, a *App) (model.Config, error) {
        patch, err := a.apiClient().FetchConfig(ctxOrBackground(ctx))
        if err != nil {
                return model.Config{}, err
        }
        return patch.ApplyTo(model.DefaultConfig()), nil
}

func readConfigFile(path string) (model.Config, error) {
        b, err := os.ReadFile(path)
        if err != nil {
                return model.Config{}, err
        }
        switch strings.ToLower(filepath.Ext(path)) {
        case ".yaml", ".yml":
                // Go through JSON so task defaults and field names match the API.
                var x any
                if err := yaml.Unmarshal(b, &x); err != nil {
                        return model.Config{}, errInvalidConfig(path, err.Error())
                }
                if b, err = json.Marshal(x); err != nil {
                        return model.Config{}, errInvalidConfig(path, err.Error())
                }
        }
        var patch model.ConfigPatch
        if err := json.Unmarshal(b, &patch); err != nil {
                return model.Config{}, errInvalidConfig(path, err.Error())
        }
        cfg := patch.ApplyTo(model.DefaultConfig())
        if cfg.LogLimit < 1 {
                return model.Config{}, errInvalidConfig(path, "log_limit must be at least 1")
        }
        seen := map[string]bool{}
        for i, t := range cfg.Tasks {
                if strings.TrimSpace(t.Name) == "" {
                        return model.Config{}, errInvalidConfig(path, "task "+itoa(i)+" has no name")
                }
                if t.ID == "" {
                        cfg.Tasks[i].ID = draft.NewTaskID(cfg.IDs())
                }
                if seen[cfg.Tasks[i].ID] {
                        return model.Config{}, errInvalidConfig(path, "duplicate task id "+cfg.Tasks[i].ID)
                }
                seen[cfg.Tasks[i].ID] = true
        }
        return cfg, nil
}
