package tui

import (
	"os"
	"strconv"
	"strings"

	"prefixddns-cli/internal/app"
	"prefixddns-cli/internal/events"
	"prefixddns-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The dashboard must remain readable on both light and dark terminal backgrounds.
// We use lipgloss.AdaptiveColor throughout and only apply "faint" styling on dark
// backgrounds (faint text on light terminals often becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted     = ac("240", "243")
	colorSurfaceFg = ac("235", "252")
	colorControlBg = ac("252", "235")
	colorInputBg   = ac("254", "234")
	colorAccent    = ac("27", "62")

	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")

	colorModalSurfaceBg = ac("255", "235")
	colorModalHeaderBg  = colorControlBg

	colorSuccess = ac("28", "78")
	colorWarning = ac("130", "214")
	colorError   = ac("160", "203")
	colorInfo    = ac("25", "75")
	colorDebug   = ac("244", "242")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func severityColor(s app.Severity) lipgloss.AdaptiveColor {
	switch s {
	case app.SeveritySuccess:
		return colorSuccess
	case app.SeverityWarning:
		return colorWarning
	case app.SeverityError:
		return colorError
	default:
		return colorInfo
	}
}

func levelColor(l model.Level) lipgloss.AdaptiveColor {
	switch l {
	case model.LevelSuccess:
		return colorSuccess
	case model.LevelWarn:
		return colorWarning
	case model.LevelError:
		return colorError
	case model.LevelDebug:
		return colorDebug
	default:
		return colorInfo
	}
}

func statusColor(s events.Status) lipgloss.AdaptiveColor {
	switch s {
	case events.StatusConnected:
		return colorSuccess
	case events.StatusDisconnected:
		return colorError
	default:
		return colorWarning
	}
}

// applyColorProfilePreference sets Lip Gloss's color profile for the dashboard.
//
// Note: termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which is useful for
// non-interactive CLI output but can accidentally disable colors in a TUI. For the TUI,
// we only honor NO_COLOR (or no_color in the client config) and otherwise follow the
// terminal's capabilities.
func applyColorProfilePreference(noColor bool) {
	if noColor || strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// If TERM/COLORTERM indicate stronger support than the detector reports, trust the env.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && profile != termenv.TrueColor {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures Lip Gloss's background detection.
//
// Priority:
// 1) PREFIXDDNS_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic (format like "15;0" = fg;bg)
func applyThemePreference() {
	switch themeOverride() {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}
	if bg, ok := colorFGBGBackground(); ok {
		lipgloss.SetHasDarkBackground(bg < 7)
	}
}

func themeOverride() string {
	switch v := strings.ToLower(strings.TrimSpace(os.Getenv("PREFIXDDNS_TUI_THEME"))); v {
	case "light", "dark":
		return v
	}
	return ""
}

// colorFGBGBackground reads the background palette index from COLORFGBG. The last
// segment is the background.
func colorFGBGBackground() (int, bool) {
	v := strings.TrimSpace(os.Getenv("COLORFGBG"))
	if v == "" {
		return 0, false
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil || bg < 0 {
		return 0, false
	}
	return bg, true
}
