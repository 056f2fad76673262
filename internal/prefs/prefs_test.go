package prefs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/reflex/internal/model"
	"github.com/verte-zerg/reflex/internal/store"
)

type memKV struct {
	values map[string]string
	getErr error
	putErr error
}

func newMemKV() *memKV {
	return &memKV{values: map[string]string{}}
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memKV) Put(_ context.Context, key, value string) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.values[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func TestLoadDefaultsWhenEmpty(t *testing.T) {
	res := Load(context.Background(), newMemKV())
	assert.Nil(t, res.BestTime)
	assert.Equal(t, model.ThemeIndigo, res.Theme)
	assert.Equal(t, model.Settings{Volume: 0.5, SoundPack: model.SoundPackClassic}, res.Settings)
	assert.Empty(t, res.Ignored)
}

func TestLoadNilKV(t *testing.T) {
	res := Load(context.Background(), nil)
	assert.Equal(t, Defaults(), res.Prefs)
}

func TestLoadValidValues(t *testing.T) {
	kv := newMemKV()
	kv.values[KeyBestTime] = "183"
	kv.values[KeyTheme] = "emerald"
	kv.values[KeySettings] = `{"volume":0.8,"soundPack":"Arcade"}`

	res := Load(context.Background(), kv)
	require.NotNil(t, res.BestTime)
	assert.Equal(t, 183, *res.BestTime)
	assert.Equal(t, model.ThemeEmerald, res.Theme)
	assert.Equal(t, model.Settings{Volume: 0.8, SoundPack: model.SoundPackArcade}, res.Settings)
}

func TestLoadMalformedFallsBackPerValue(t *testing.T) {
	kv := newMemKV()
	kv.values[KeyBestTime] = "fast"
	kv.values[KeyTheme] = "chartreuse"
	kv.values[KeySettings] = `{"volume":`

	res := Load(context.Background(), kv)
	assert.Nil(t, res.BestTime)
	assert.Equal(t, model.ThemeIndigo, res.Theme)
	assert.Equal(t, model.DefaultSettings(), res.Settings)
	assert.Len(t, res.Ignored, 3)
}

func TestLoadRejectsOutOfRangeSettings(t *testing.T) {
	kv := newMemKV()
	kv.values[KeySettings] = `{"volume":3,"soundPack":"Tech"}`
	kv.values[KeyTheme] = "amber"

	res := Load(context.Background(), kv)
	assert.Equal(t, model.DefaultSettings(), res.Settings)
	assert.Equal(t, model.ThemeAmber, res.Theme)
	assert.Len(t, res.Ignored, 1)
}

func TestLoadStorageFailureNeverBlocks(t *testing.T) {
	kv := newMemKV()
	kv.getErr = errors.New("disk on fire")

	res := Load(context.Background(), kv)
	assert.Equal(t, Defaults(), res.Prefs)
	assert.Len(t, res.Ignored, 3)
}

func TestSaverBestTimeAbsenceDeletesKey(t *testing.T) {
	kv := newMemKV()
	saver := NewSaver(kv)

	best := 250
	saver.SaveBestTime(&best)
	assert.Equal(t, "250", kv.values[KeyBestTime])

	saver.SaveBestTime(nil)
	_, ok := kv.values[KeyBestTime]
	assert.False(t, ok, "absent best time must not be stored as a sentinel")
}

func TestSaverSwallowsErrors(t *testing.T) {
	kv := newMemKV()
	kv.putErr = errors.New("read-only")
	saver := NewSaver(kv)

	assert.NotPanics(t, func() {
		saver.SaveTheme(model.ThemeRose)
		saver.SaveSettings(model.DefaultSettings())
	})
	assert.NotPanics(t, func() {
		NewSaver(nil).SaveTheme(model.ThemeRose)
	})
}

func TestSaverRoundTripThroughSQLite(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "reflex.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	saver := NewSaver(st)
	best := 199
	saver.SaveBestTime(&best)
	saver.SaveTheme(model.ThemeRose)
	saver.SaveSettings(model.Settings{Volume: 0.25, SoundPack: model.SoundPackTech})

	res := Load(context.Background(), st)
	require.NotNil(t, res.BestTime)
	assert.Equal(t, 199, *res.BestTime)
	assert.Equal(t, model.ThemeRose, res.Theme)
	assert.Equal(t, model.Settings{Volume: 0.25, SoundPack: model.SoundPackTech}, res.Settings)
	assert.Empty(t, res.Ignored)
}
