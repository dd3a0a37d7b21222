package cli

import (
        "net/netip"

        "github.com/spf13/cobra"
)

func newTriggerCmd(a *App) *cobra.Command {
        var ip string

        cmd := &cobra.Command{
                Use:   "trigger NAME",
                Short: "Run a task through the API trigger endpoint",
                Long:  "The task must have API triggering enabled. IP is the new IPv6 address; the task's suffix is combined with its /64 prefix on the server.",
                Args:  cobra.ExactArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        if _, err := netip.ParseAddr(ip); err != nil {
                                return writeErr(cmd, errInvalidArgs("--ip must be an IPv6 address"))
                        }
                        resp, err := a.apiClient().TriggerTask(ctxOrBackground(cmd.Context()), args[0], ip)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        return writeOut(cmd, a, map[string]any{"data": resp})
                },
        }
        cmd.Flags().StringVar(&ip, "ip", "", "New IPv6 address (required)")
        _ = cmd.MarkFlagRequired("ip")
        return cmd
}
