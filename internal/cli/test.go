package cli

import (
        "errors"

        "prefixddns-cli/internal/api"
        "prefixddns-cli/internal/draft"
        "prefixddns-cli/internal/editor"

        "github.com/spf13/cobra"
)

func newTestCmd(a *App) *cobra.Command {
        var ip string

        cmd := &cobra.Command{
                Use:   "test NAME",
                Short: "Send a saved task's webhook once, using a test address",
                Long:  "Runs the named task on the server as a transient test: it is sent as if enabled and API-triggerable, and the server configuration is not changed.",
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

                        ed := editor.New(draft.New(cfg))
                        if err := ed.OpenForEdit(i); err != nil {
                                return writeErr(cmd, err)
                        }
                        if ip == "" {
                                ip = a.Settings.FakeIP
                        }
                        req, err := ed.TestPayload(ip)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        preview := ed.Preview(req.FakeIP)

                        text, err := a.apiClient().TestWebhook(ctxOrBackground(cmd.Context()), req)
                        if err != nil {
                                var te *api.TransportError
                                if errors.As(err, &te) && te.Status != 0 {
                                        return writeErr(cmd, testFailedError{body: te.Body})
                                }
                                return writeErr(cmd, err)
                        }
                        data := map[string]any{"result": text, "fake_ip": req.FakeIP, "url": preview.URL}
                        if preview.Warning != "" {
                                data["warning"] = preview.Warning
                        }
                        return writeOut(cmd, a, map[string]any{"data": data})
                },
        }
        cmd.Flags().StringVar(&ip, "ip", "", "Address to test with (default: fake_ip from the client config)")
        return cmd
}
