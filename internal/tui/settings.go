package tui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/huh"

	"github.com/verte-zerg/reflex/internal/model"
)

const volumeStep = 10

type settingsForm struct {
	form   *huh.Form
	volume int
	pack   model.SoundPack

	// stored volume, kept exactly when the rounded selection is left alone
	initial float64
}

func newSettingsForm(current model.Settings, theme model.ThemeColor) *settingsForm {
	sf := &settingsForm{
		volume:  volumePercent(current.Volume),
		pack:    current.SoundPack,
		initial: clampUnit(current.Volume),
	}
	if !sf.pack.Valid() {
		sf.pack = model.SoundPackClassic
	}

	volumes := make([]huh.Option[int], 0, 100/volumeStep+1)
	for v := 0; v <= 100; v += volumeStep {
		volumes = append(volumes, huh.NewOption(fmt.Sprintf("%d%%", v), v))
	}
	packs := make([]huh.Option[model.SoundPack], 0, len(model.SoundPacks))
	for _, p := range model.SoundPacks {
		packs = append(packs, huh.NewOption(fmt.Sprintf("%s  %s", p, p.Description()), p))
	}

	sf.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Volume").
				Options(volumes...).
				Value(&sf.volume),
			huh.NewSelect[model.SoundPack]().
				Title("Sound Pack").
				Options(packs...).
				Value(&sf.pack),
		),
	).WithTheme(settingsHuhTheme(theme)).WithShowHelp(false).WithWidth(maxContentWidth - 8)
	return sf
}

// settings returns the values currently selected in the form.
func (sf *settingsForm) settings() model.Settings {
	volume := float64(sf.volume) / 100
	if sf.volume == volumePercent(sf.initial) {
		volume = sf.initial
	}
	return model.Settings{Volume: volume, SoundPack: sf.pack}
}

func volumePercent(v float64) int {
	return int(math.Round(clampUnit(v)*100/volumeStep)) * volumeStep
}

func clampUnit(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
