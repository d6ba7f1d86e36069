package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"data_file": "av_receivers.jsonl", "chart": {"width": 1024, "height": 768, "axis_gutter": 80}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	conf, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "av_receivers.jsonl", conf.DataFile)
	assert.Equal(t, 1024, conf.Chart.Width)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, 500, conf.PriceBandwidth)
	assert.Equal(t, "#e8a820", conf.Palette.Neutral)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestPaletteColors(t *testing.T) {
	pal, err := Default().Palette.Colors()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xd9, G: 0x2b, B: 0x2b, A: 0xff}, pal.Low)
	assert.Equal(t, color.RGBA{R: 0x2e, G: 0x9e, B: 0x44, A: 0xff}, pal.High)

	_, err = PaletteConfig{Low: "red", Neutral: "#e8a820", High: "#2e9e44"}.Colors()
	assert.Error(t, err)
}
