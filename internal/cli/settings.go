package cli

import (
        "prefixddns-cli/internal/config"

        "github.com/spf13/cobra"
)

func newSettingsCmd(a *App) *cobra.Command {
        cmd := &cobra.Command{
                Use:   "settings",
                Short: "Show or change the client settings file",
                RunE: func(cmd *cobra.Command, args []string) error {
                        return writeOut(cmd, a, map[string]any{
                                "data": settingsView(a.Settings),
                                "meta": map[string]any{"path": a.clientPath, "keys": config.Keys()},
                        })
                },
        }

        setCmd := &cobra.Command{
                Use:   "set KEY VALUE",
                Short: "Write one key to the client settings file",
                Args:  cobra.ExactArgs(2),
                RunE: func(cmd *cobra.Command, args []string) error {
                        // Edit the file as stored, not the env/flag-resolved view.
                        cfg, err := config.LoadFile(a.clientPath)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        if err := cfg.Set(args[0], args[1]); err != nil {
                                return writeErr(cmd, err)
                        }
                        if err := config.SaveFile(a.clientPath, cfg); err != nil {
                                return writeErr(cmd, err)
                        }
                        return writeOut(cmd, a, map[string]any{"data": settingsView(cfg), "meta": map[string]any{"path": a.clientPath}})
                },
        }

        cmd.AddCommand(setCmd)
        return cmd
}

// settingsView uses the file's key names and human-readable durations.
func settingsView(cfg config.Config) map[string]any {
        out := map[string]any{
                "server":           cfg.Server,
                "fake_ip":          cfg.FakeIP,
                "log_buffer":       cfg.LogBuffer,
                "default_template": cfg.DefaultTemplate,
                "no_color":         cfg.NoColor,
        }
        if cfg.ReconnectDelay > 0 {
                out["reconnect_delay"] = cfg.ReconnectDelay.String()
        }
        if cfg.RequestTimeout > 0 {
                out["request_timeout"] = cfg.RequestTimeout.String()
        }
        return out
}
