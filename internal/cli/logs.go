package cli

import (
        "encoding/json"
        "errors"
        "fmt"
        "io"

        "prefixddns-cli/internal/events"
        "prefixddns-cli/internal/logview"
        "prefixddns-cli/internal/model"

        tea "github.com/charmbracelet/bubbletea"
        "github.com/spf13/cobra"
)

func newLogsCmd(a *App) *cobra.Command {
        var count int
        var jsonLines bool

        cmd := &cobra.Command{
                Use:   "logs",
                Short: "Follow the server's live log (reconnects until interrupted)",
                RunE: func(cmd *cobra.Command, args []string) error {
                        m := &logsModel{
                                out:       cmd.OutOrStdout(),
                                errOut:    cmd.ErrOrStderr(),
                                limit:     count,
                                jsonLines: jsonLines,
                        }
                        m.stream = events.NewClient(events.Options{
                                Dialer:         events.NewHTTPDialer(a.Settings.Server),
                                ReconnectDelay: a.Settings.ReconnectDelay,
                                Observer:       m,
                                Sink:           m,
                        })
                        p := tea.NewProgram(m,
                                tea.WithContext(ctxOrBackground(cmd.Context())),
                                tea.WithInput(nil),
                                tea.WithOutput(io.Discard),
                                tea.WithoutRenderer(),
                        )
                        _, err := p.Run()
                        m.stream.Stop()
                        if err != nil && !errors.Is(err, tea.ErrInterrupted) && !errors.Is(err, tea.ErrProgramKilled) {
                                return writeErr(cmd, err)
                        }
                        return m.err
                },
        }
        cmd.Flags().IntVar(&count, "count", 0, "Exit after this many entries (0 = follow forever)")
        cmd.Flags().BoolVar(&jsonLines, "json", false, "Print raw entries as JSON lines")
        return cmd
}

// logsModel drives the stream client without a UI: entries go straight to out.
type logsModel struct {
        stream    *events.Client
        out       io.Writer
        errOut    io.Writer
        limit     int
        jsonLines bool

        seen int
        err  error
}

func (m *logsModel) Init() tea.Cmd {
        return m.stream.Connect()
}

func (m *logsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
        cmd := m.stream.Update(msg)
        if m.err != nil || (m.limit > 0 && m.seen >= m.limit) {
                return m, tea.Quit
        }
        return m, cmd
}

func (m *logsModel) View() string { return "" }

func (m *logsModel) Append(e model.LogEntry) {
        m.seen++
        if m.limit > 0 && m.seen > m.limit {
                return
        }
        var err error
        if m.jsonLines {
                var b []byte
                if b, err = json.Marshal(e); err == nil {
                        _, err = fmt.Fprintln(m.out, string(b))
                }
        } else {
                _, err = fmt.Fprintln(m.out, logview.Line(e))
        }
        if err != nil && m.err == nil {
                m.err = err
        }
}

func (m *logsModel) StatusChanged(s events.Status) {
        fmt.Fprintf(m.errOut, "-- %s\n", s.Label())
}
