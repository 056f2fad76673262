package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/reflex/internal/model"
	"github.com/verte-zerg/reflex/internal/news"
	"github.com/verte-zerg/reflex/internal/stats"
)

const (
	maxContentWidth = 64
	areaHeight      = 7
	fatalMessage    = "Engine failure. Please reload."
)

type areaCopy struct {
	title  string
	desc   string
	button string
}

func copyFor(phase model.Phase, result int) areaCopy {
	switch phase {
	case model.PhaseWaiting:
		return areaCopy{"Wait for Color...", "Do not click yet. Stay focused.", "Ready..."}
	case model.PhaseActive:
		return areaCopy{"CLICK NOW!", "AS FAST AS YOU CAN!", "CLICK!"}
	case model.PhaseResult:
		return areaCopy{fmt.Sprintf("%d ms", result), stats.Rating(result), "Try Again"}
	case model.PhaseTooSoon:
		return areaCopy{"Too Soon!", "You clicked before the color changed.", "Retry Attempt"}
	default:
		return areaCopy{"Reaction Pro", "Test your reflexes and visual response time.", "Click to Start"}
	}
}

func renderArea(phase model.Phase, result int, theme model.ThemeColor, width int) string {
	c := copyFor(phase, result)
	inner := width - 4
	if inner < 1 {
		inner = 1
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPanel).
		Width(inner).
		Height(areaHeight).
		Align(lipgloss.Center, lipgloss.Center)
	title := titleStyle
	desc := mutedStyle
	button := dimStyle

	switch phase {
	case model.PhaseActive:
		bg := accent(theme)
		box = box.BorderForeground(bg).Background(bg)
		title = title.Background(bg)
		desc = textStyle.Background(bg)
		button = textStyle.Background(bg).Bold(true)
	case model.PhaseResult:
		box = box.BorderForeground(accent(theme))
		title = accentStyle(theme)
	case model.PhaseTooSoon:
		box = box.BorderForeground(colorDanger)
		title = errorStyle.Bold(true)
	case model.PhaseWaiting:
		title = mutedStyle.Bold(true)
	}

	body := strings.Join([]string{
		title.Render(truncate(c.title, inner)),
		desc.Render(truncate(c.desc, inner)),
		"",
		button.Render("[ " + c.button + " ]"),
	}, "\n")
	return box.Render(body)
}

func renderHeader(best *int, muted bool, theme model.ThemeColor, width int) string {
	left := titleStyle.Render("Reaction") + accentStyle(theme).Render("Pro")
	var right []string
	if best != nil {
		right = append(right, labelStyle.Render("BEST ")+bestStyle.Render(fmt.Sprintf("%dms", *best)))
	}
	if muted {
		right = append(right, dimStyle.Render("sound off"))
	} else {
		right = append(right, mutedStyle.Render("sound on"))
	}
	r := strings.Join(right, dimStyle.Render("  ·  "))
	gap := width - lipgloss.Width(left) - lipgloss.Width(r)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + r
}

func renderSelectors(difficulty model.Difficulty, theme model.ThemeColor) string {
	levels := make([]string, 0, len(model.Difficulties))
	for _, d := range model.Difficulties {
		name := strings.ToUpper(string(d))
		if d == difficulty {
			levels = append(levels, accentStyle(theme).Render("["+name+"]"))
			continue
		}
		levels = append(levels, dimStyle.Render(" "+name+" "))
	}
	swatches := make([]string, 0, len(model.ThemeColors))
	for _, c := range model.ThemeColors {
		mark := "○"
		if c == theme {
			mark = "●"
		}
		swatches = append(swatches, lipgloss.NewStyle().Foreground(accent(c)).Render(mark))
	}
	return labelStyle.Render("DIFFICULTY ") + strings.Join(levels, "") +
		"   " + labelStyle.Render("THEME ") + strings.Join(swatches, " ")
}

func renderStats(history []model.Attempt, best *int, theme model.ThemeColor, width int) string {
	avg, ok := stats.Average(history)
	if !ok {
		return ""
	}
	bestText := "--"
	if best != nil {
		bestText = fmt.Sprintf("%dms", *best)
	}
	metrics := labelStyle.Render("ALL-TIME BEST ") + bestStyle.Render(bestText) +
		dimStyle.Render("  │  ") +
		labelStyle.Render("SESSION AVG ") + textStyle.Render(fmt.Sprintf("%dms", avg))

	chips := make([]string, 0, len(history))
	used := lipgloss.Width("RECENT HISTORY ")
	for i, a := range history {
		chip := fmt.Sprintf("%dms", a.Time)
		if used+len(chip)+1 > width {
			break
		}
		used += len(chip) + 1
		if i == 0 {
			chips = append(chips, accentStyle(theme).Render(chip))
			continue
		}
		chips = append(chips, mutedStyle.Render(chip))
	}
	recent := labelStyle.Render("RECENT HISTORY ") + strings.Join(chips, " ")
	return metrics + "\n" + recent
}

type newsView struct {
	state   news.State
	items   []model.NewsItem
	message string
	spinner string
}

func renderNews(v newsView, theme model.ThemeColor, width int) string {
	// Border and padding take two cells on each side.
	inner := width - 4
	if inner < 1 {
		inner = 1
	}
	header := titleStyle.Render("Pro Reflex News") + "  " + labelStyle.Render("GLOBAL UPDATES")
	action := dimStyle.Render("n refresh")
	if v.state == news.StateLoading {
		action = dimStyle.Render("Fetching...")
	}
	gap := inner - lipgloss.Width(header) - lipgloss.Width(action)
	if gap < 1 {
		gap = 1
	}
	lines := []string{header + strings.Repeat(" ", gap) + action, ""}

	switch {
	case v.state == news.StateLoading:
		lines = append(lines, v.spinner+" "+mutedStyle.Render("Consulting global networks..."))
	case len(v.items) > 0:
		for _, item := range v.items {
			lines = append(lines,
				textStyle.Render("• "+truncate(item.Title, inner-2)),
				"  "+accentStyle(theme).Render("SOURCE ")+dimStyle.Render(truncate(item.URL, inner-9)))
		}
	default:
		lines = append(lines, mutedStyle.Render("Stay informed about the gaming world."))
	}
	if v.state == news.StateFailed && v.message != "" {
		lines = append(lines, "", errorStyle.Render(truncate(v.message, inner)))
	}
	return panelStyle.Width(inner + 2).Render(strings.Join(lines, "\n"))
}

func renderFatal(width, height int) string {
	body := strings.Join([]string{
		errorStyle.Bold(true).Render("Something went wrong"),
		"",
		mutedStyle.Render(fatalMessage),
		"",
		dimStyle.Render("Press q to quit, then start reflex again."),
	}, "\n")
	if width == 0 || height == 0 {
		return body
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func renderFooter(difficulty model.Difficulty) string {
	return footerStyle.Render(fmt.Sprintf("Precision Engine: v2.5. Steady. %s mode active.", strings.ToUpper(string(difficulty))))
}
