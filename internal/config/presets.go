package config

import "sort"

// Presets holds named adjustments layered on top of DefaultConfig.
var Presets = map[string]func(*Config){
	"classic": func(c *Config) {},
	"sapling": func(c *Config) {
		c.Life = 32
		c.Multiplier = 4
		c.Base = 2
	},
	"ancient": func(c *Config) {
		c.Life = 200
		c.Multiplier = 12
	},
	"sparse": func(c *Config) {
		c.Life = 120
		c.Multiplier = 2
	},
	"bushy": func(c *Config) {
		c.Multiplier = 16
		c.Procedural = true
	},
	"sakura": func(c *Config) {
		c.Leaves = []string{"❀", "✿", "&"}
		c.Theme = "classic"
	},
	"screensaver": func(c *Config) {
		c.Screensaver = true
		c.Live = true
		c.Infinite = true
		c.Base = 2
	},
}

func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
