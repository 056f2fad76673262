// Package tui provides the Bubble Tea reaction game interface.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/reflex/internal/audio"
	"github.com/verte-zerg/reflex/internal/game"
	"github.com/verte-zerg/reflex/internal/model"
	"github.com/verte-zerg/reflex/internal/news"
)

// Entrance sequence offsets. Input is locked until the last one.
var introStages = []time.Duration{100 * time.Millisecond, 500 * time.Millisecond, 900 * time.Millisecond}

const introDone = 3

// NewsSource fetches headlines and phrases fetch errors for display.
type NewsSource interface {
	Fetch(ctx context.Context) ([]model.NewsItem, error)
	Describe(err error) string
}

// PrefSaver persists cosmetic choices.
type PrefSaver interface {
	SaveTheme(theme model.ThemeColor)
	SaveSettings(settings model.Settings)
}

// Options wires the model to its collaborators.
type Options struct {
	Engine    *game.Engine
	Player    *audio.Player
	Prefs     PrefSaver
	News      NewsSource
	Theme     model.ThemeColor
	SkipIntro bool
}

type introMsg struct {
	stage int
}

type stimulusMsg struct {
	token uint64
}

type newsMsg struct {
	items []model.NewsItem
	err   error
}

// Model implements the Bubble Tea reaction UI.
type Model struct {
	engine *game.Engine
	player *audio.Player
	prefs  PrefSaver
	source NewsSource

	theme      model.ThemeColor
	introStage int
	fatal      bool
	confirming bool
	settings   *settingsForm

	news    news.Controller
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	width  int
	height int
}

// NewModel constructs the game UI. The engine's intro lock is held until
// the entrance sequence completes.
func NewModel(opts Options) *Model {
	theme := opts.Theme
	if _, ok := themeColors[theme]; !ok {
		theme = model.ThemeIndigo
	}
	m := &Model{
		engine: opts.Engine,
		player: opts.Player,
		prefs:  opts.Prefs,
		source: opts.News,
		theme:  theme,
		help:   help.New(),
		keys:   defaultKeyMap(),
	}
	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle(theme)))
	if opts.SkipIntro {
		m.introStage = introDone
		m.engine.Unlock(game.LockIntro)
	} else {
		m.engine.Lock(game.LockIntro)
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.introStage >= introDone {
		return nil
	}
	cmds := []tea.Cmd{m.spinner.Tick}
	for i, at := range introStages {
		stage := i + 1
		cmds = append(cmds, tea.Tick(at, func(time.Time) tea.Msg { return introMsg{stage: stage} }))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case introMsg:
		if msg.stage > m.introStage {
			m.introStage = msg.stage
		}
		if m.introStage >= introDone {
			m.engine.Unlock(game.LockIntro)
		}
		return m, nil
	case stimulusMsg:
		m.engine.Fire(msg.token)
		return m, nil
	case newsMsg:
		m.news.Finish(msg.items, msg.err)
		if msg.err != nil {
			log.Warn().Err(msg.err).Msg("headline refresh failed")
		}
		return m, nil
	case spinner.TickMsg:
		if !m.spinning() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && m.settings == nil && !m.fatal && !m.confirming {
			return m, m.click()
		}
		return m, nil
	}
	if m.settings != nil {
		return m, m.updateSettings(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, m.quit()
	}
	if m.fatal {
		if key.Matches(msg, m.keys.Quit) {
			return m, m.quit()
		}
		return m, nil
	}
	if m.settings != nil {
		if msg.Type == tea.KeyEsc {
			m.closeSettings()
			return m, nil
		}
		return m, m.updateSettings(msg)
	}
	if m.confirming {
		switch strings.ToLower(msg.String()) {
		case "y":
			m.confirming = false
			m.engine.ResetBest()
		case "n", "esc":
			m.confirming = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Click):
		return m, m.click()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Difficulty):
		if m.engine.Phase() == model.PhaseIdle && m.introStage >= introDone {
			m.engine.SetDifficulty(nextDifficulty(m.engine.Difficulty()))
			m.player.Play(audio.EventTick)
		}
	case key.Matches(msg, m.keys.Theme):
		if m.engine.Phase() == model.PhaseIdle && m.introStage >= introDone {
			m.setTheme(nextTheme(m.theme))
			m.player.Play(audio.EventTick)
		}
	case key.Matches(msg, m.keys.Mute):
		m.toggleMute()
	case key.Matches(msg, m.keys.Settings):
		return m, m.openSettings()
	case key.Matches(msg, m.keys.ResetBest):
		if _, ok := m.engine.BestTime(); ok {
			m.confirming = true
		}
	case key.Matches(msg, m.keys.News):
		return m, m.fetchNews()
	}
	return m, nil
}

func (m *Model) click() tea.Cmd {
	tr, err := m.engine.Click()
	if err != nil {
		log.Error().Err(err).Str("phase", m.engine.Phase().String()).Msg("engine failure")
		m.fatal = true
		m.engine.Close()
		return nil
	}
	if !tr.Applied || tr.To != model.PhaseWaiting {
		return nil
	}
	round, ok := m.engine.Armed()
	if !ok {
		return nil
	}
	return waitForStimulus(round)
}

// waitForStimulus blocks until the round's timer fires or is cancelled.
func waitForStimulus(round game.Round) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-round.Fire:
			return stimulusMsg{token: round.Token}
		case <-round.Cancel:
			return nil
		}
	}
}

func (m *Model) fetchNews() tea.Cmd {
	if m.source == nil || !m.news.Begin() {
		return nil
	}
	source := m.source
	fetch := func() tea.Msg {
		items, err := source.Fetch(context.Background())
		return newsMsg{items: items, err: err}
	}
	return tea.Batch(fetch, m.spinner.Tick)
}

func (m *Model) openSettings() tea.Cmd {
	m.engine.Lock(game.LockSettings)
	m.settings = newSettingsForm(m.player.Settings(), m.theme)
	m.player.Play(audio.EventTick)
	return m.settings.form.Init()
}

func (m *Model) updateSettings(msg tea.Msg) tea.Cmd {
	form, cmd := m.settings.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.settings.form = f
	}
	switch m.settings.form.State {
	case huh.StateCompleted:
		m.applySettings(m.settings.settings())
		m.closeSettings()
	case huh.StateAborted:
		m.closeSettings()
	}
	return cmd
}

func (m *Model) applySettings(settings model.Settings) {
	if m.player != nil {
		m.player.Apply(settings)
		settings = m.player.Settings()
	}
	if m.prefs != nil {
		m.prefs.SaveSettings(settings)
	}
	m.player.Play(audio.EventTick)
}

func (m *Model) closeSettings() {
	m.settings = nil
	m.engine.Unlock(game.LockSettings)
}

func (m *Model) setTheme(theme model.ThemeColor) {
	m.theme = theme
	m.spinner.Style = accentStyle(theme)
	if m.prefs != nil {
		m.prefs.SaveTheme(theme)
	}
}

func (m *Model) toggleMute() {
	if m.player == nil {
		return
	}
	muted := !m.player.Muted()
	m.player.SetMuted(muted)
	if !muted {
		m.player.Play(audio.EventTick)
	}
}

func (m *Model) quit() tea.Cmd {
	m.engine.Close()
	return tea.Quit
}

func (m *Model) spinning() bool {
	return m.introStage == 0 || m.news.Loading()
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.fatal {
		return renderFatal(m.width, m.height)
	}
	if m.introStage == 0 {
		return m.place(m.spinner.View())
	}

	width := m.contentWidth()
	best := m.bestPtr()
	sections := []string{renderHeader(best, m.player.Muted(), m.theme, width), ""}

	if m.settings != nil {
		title := titleStyle.Render("Audio Settings")
		sections = append(sections, panelStyle.Width(width-4).Render(title+"\n\n"+m.settings.form.View()),
			"", dimStyle.Render("enter confirm · esc cancel"))
		return m.place(lipgloss.JoinVertical(lipgloss.Left, sections...))
	}

	if m.introStage >= 2 {
		result, _ := m.engine.LastResult()
		sections = append(sections, renderArea(m.engine.Phase(), result, m.theme, width))
	}
	if m.introStage >= introDone {
		if m.engine.Phase() == model.PhaseIdle {
			sections = append(sections, "", renderSelectors(m.engine.Difficulty(), m.theme))
		}
		if s := renderStats(m.engine.History(), best, m.theme, width); s != "" {
			sections = append(sections, "", s)
		}
		sections = append(sections, "", renderNews(m.newsView(), m.theme, width))
		sections = append(sections, "", renderFooter(m.engine.Difficulty()))
		if m.confirming {
			sections = append(sections, confirmStyle.Render("Reset your all-time best score? (y/n)"))
		} else {
			sections = append(sections, m.help.View(m.keys))
		}
	}
	return m.place(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) newsView() newsView {
	v := newsView{
		state:   m.news.State(),
		items:   m.news.Items(),
		spinner: m.spinner.View(),
	}
	if err := m.news.Err(); err != nil && m.source != nil {
		v.message = m.source.Describe(err)
	}
	return v
}

func (m *Model) bestPtr() *int {
	best, ok := m.engine.BestTime()
	if !ok {
		return nil
	}
	return &best
}

func (m *Model) contentWidth() int {
	if m.width <= 0 || m.width > maxContentWidth {
		return maxContentWidth
	}
	return m.width
}

func (m *Model) place(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func nextDifficulty(d model.Difficulty) model.Difficulty {
	for i, v := range model.Difficulties {
		if v == d {
			return model.Difficulties[(i+1)%len(model.Difficulties)]
		}
	}
	return model.DifficultyMedium
}

func nextTheme(c model.ThemeColor) model.ThemeColor {
	for i, v := range model.ThemeColors {
		if v == c {
			return model.ThemeColors[(i+1)%len(model.ThemeColors)]
		}
	}
	return model.ThemeIndigo
}
