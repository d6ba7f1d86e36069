package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"

	"github.com/meermanr/whathifi/app/review"
	"github.com/meermanr/whathifi/app/vizcolumns"
)

// ChartConfig holds the pixel-space layout constants handed to the
// scale builder and the renderer.
type ChartConfig struct {
	// Plotting area, excluding the axis gutter.
	Width  int `json:"width"`
	Height int `json:"height"`
	// Gutter reserved on the left and bottom for tick labels.
	AxisGutter int `json:"axis_gutter"`
}

// PaletteConfig names the three heat-scale stops as hex colors.
type PaletteConfig struct {
	Low     string `json:"low"`
	Neutral string `json:"neutral"`
	High    string `json:"high"`
}

// VizConfig is the application configuration, read from config.json.
type VizConfig struct {
	// File with reviews encoded as JSONL
	DataFile       string        `json:"data_file"`
	PriceBandwidth int           `json:"price_bandwidth"`
	Chart          ChartConfig   `json:"chart"`
	Palette        PaletteConfig `json:"palette"`
}

// Default returns the configuration used when no config file is given.
func Default() *VizConfig {
	return &VizConfig{
		DataFile:       "reviews.jsonl",
		PriceBandwidth: review.DefaultPriceBandwidth,
		Chart: ChartConfig{
			Width:      720,
			Height:     480,
			AxisGutter: 60,
		},
		Palette: PaletteConfig{
			Low:     "#d92b2b",
			Neutral: "#e8a820",
			High:    "#2e9e44",
		},
	}
}

// Load reads a config file over the defaults: absent fields keep their
// default values.
func Load(path string) (*VizConfig, error) {
	conf := Default()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error while opening %s: %w", path, err)
	}
	defer file.Close()

	dec := json.NewDecoder(file)
	if err := dec.Decode(conf); err != nil {
		return nil, fmt.Errorf("error while reading %s: %w", path, err)
	}
	return conf, nil
}

// Colors parses the configured hex stops into a heat palette.
func (p PaletteConfig) Colors() (vizcolumns.Palette, error) {
	pal := vizcolumns.Palette{}
	var err error
	if pal.Low, err = parseHexColor(p.Low); err != nil {
		return pal, fmt.Errorf("bad low color: %w", err)
	}
	if pal.Neutral, err = parseHexColor(p.Neutral); err != nil {
		return pal, fmt.Errorf("bad neutral color: %w", err)
	}
	if pal.High, err = parseHexColor(p.High); err != nil {
		return pal, fmt.Errorf("bad high color: %w", err)
	}
	return pal, nil
}

func parseHexColor(s string) (color.RGBA, error) {
	var c color.RGBA
	c.A = 0xff
	if len(s) != 7 || s[0] != '#' {
		return c, fmt.Errorf("expected #rrggbb, got %q", s)
	}
	_, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B)
	if err != nil {
		return c, fmt.Errorf("expected #rrggbb, got %q", s)
	}
	return c, nil
}
