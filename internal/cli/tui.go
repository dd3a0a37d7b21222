package cli

import (
        "log"

        "prefixddns-cli/internal/config"
        "prefixddns-cli/internal/tui"
)

func runTUI(app *App) error {
        opts := tui.Options{Settings: app.Settings}
        if app.clientPath != "" {
                // Live reload is best effort; the dashboard works without it.
                w, err := config.Watch(app.clientPath)
                if err != nil {
                        log.Printf("config: watch %s: %v", app.clientPath, err)
                } else {
                        defer w.Close()
                        opts.Watcher = w
                }
        }
        return tui.Run(opts)
}
