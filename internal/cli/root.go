package cli

import (
        "errors"
        "fmt"
        "io"
        "log"
        "os"
        "strings"

        "prefixddns-cli/internal/api"
        "prefixddns-cli/internal/config"
        "prefixddns-cli/internal/format"

        tea "github.com/charmbracelet/bubbletea"
        "github.com/spf13/cobra"
)

type App struct {
        Server     string
        PrettyJSON bool
        Format     string
        LogFile    string

        // Settings is the resolved client configuration: flags over env over file.
        Settings   config.Config
        clientPath string
        logFile    io.Closer
}

func NewRootCmd() *cobra.Command {
        app := &App{}

        cmd := &cobra.Command{
                Use:          "prefixddns",
                Short:        "PrefixDDNS dashboard (TUI) + CLI",
                SilenceUsage: true,
                Example: strings.TrimSpace(`
  # Start the interactive dashboard
  prefixddns

  # Talk to a server on another host
  prefixddns --server http://router.lan:3000 tasks list

  # Follow the live log
  prefixddns logs

  # Run a task the way an external caller would
  prefixddns trigger home --ip 2001:db8:1:2::1
`),
                RunE: func(cmd *cobra.Command, args []string) error {
                        // No subcommand => interactive dashboard.
                        if cmd.HasSubCommands() && len(args) == 0 {
                                return runTUI(app)
                        }
                        return cmd.Help()
                },
        }

        cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
                if err := loadClientConfig(app); err != nil {
                        return writeErr(cmd, err)
                }
                return setupLogging(app)
        }

        cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
                if app.logFile != nil {
                        _ = app.logFile.Close()
                        app.logFile = nil
                }
                return nil
        }

        cmd.PersistentFlags().StringVar(&app.Server, "server", "", "Server base URL (default from PREFIXDDNS_SERVER or the client config, else "+api.DefaultServer+")")
        cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
        cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("PREFIXDDNS_FORMAT", "json"), "Output format ("+strings.Join(format.Formats, "|")+")")
        cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", envOr("PREFIXDDNS_LOG", ""), "Write diagnostics to this file")

        cmd.AddCommand(newConfigCmd(app))
        cmd.AddCommand(newTasksCmd(app))
        cmd.AddCommand(newTemplatesCmd(app))
        cmd.AddCommand(newTestCmd(app))
        cmd.AddCommand(newTriggerCmd(app))
        cmd.AddCommand(newLogsCmd(app))
        cmd.AddCommand(newSettingsCmd(app))

        return cmd
}

func loadClientConfig(app *App) error {
        path, err := config.Path()
        if err != nil {
                return err
        }
        cfg, err := config.LoadFile(path)
        if err != nil {
                return err
        }
        cfg, err = cfg.ApplyEnv(os.Getenv)
        if err != nil {
                // Bad env values are skipped, not fatal.
                log.Printf("config: %v", err)
        }
        if s := strings.TrimSpace(app.Server); s != "" {
                cfg.Server = s
        }
        app.Settings = cfg.WithDefaults()
        app.clientPath = path
        return nil
}

// setupLogging sends the standard logger to --log-file, or nowhere. The dashboard owns
// the terminal, so diagnostics never go to stderr.
func setupLogging(app *App) error {
        if strings.TrimSpace(app.LogFile) == "" {
                log.SetOutput(io.Discard)
                return nil
        }
        f, err := tea.LogToFile(app.LogFile, "prefixddns")
        if err != nil {
                return fmt.Errorf("open log file: %w", err)
        }
        app.logFile = f
        return nil
}

func (app *App) apiClient() *api.Client {
        return api.New(api.Config{
                Server:  app.Settings.Server,
                Timeout: app.Settings.RequestTimeout,
        })
}

func envOr(k, d string) string {
        if v := os.Getenv(k); v != "" {
                return v
        }
        return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
        return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
        fmt.Fprintln(cmd.ErrOrStderr(), errorText(err))
        return err
}

// errorText prefers the server's own words over transport detail.
func errorText(err error) string {
        var tf testFailedError
        if errors.As(err, &tf) {
                return "Test Failed: " + tf.body
        }
        var te *api.TransportError
        if errors.As(err, &te) && te.Status != 0 {
                return fmt.Sprintf("%s: %s", te.Op, te.Detail())
        }
        return err.Error()
}
