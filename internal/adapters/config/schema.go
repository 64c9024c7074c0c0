package config

import "time"

// File represents the structure of qsnap.yaml (or qsnap.jsonc).
// Unset fields keep their defaults.
type File struct {
	Host      string      `yaml:"host" json:"host"`
	Cache     string      `yaml:"cache" json:"cache"`
	Artifacts string      `yaml:"artifacts" json:"artifacts"`
	Renderer  string      `yaml:"renderer" json:"renderer"`
	Documents []string    `yaml:"documents" json:"documents"`
	Ignore    []string    `yaml:"ignore" json:"ignore"`
	Debounce  *Duration   `yaml:"debounce" json:"debounce"`
	Browser   *BrowserDTO `yaml:"browser" json:"browser"`
}

// BrowserDTO represents the browser renderer section.
type BrowserDTO struct {
	Bin      string    `yaml:"bin" json:"bin"`
	Headless *bool     `yaml:"headless" json:"headless"`
	Timeout  *Duration `yaml:"timeout" json:"timeout"`
	Width    *int      `yaml:"width" json:"width"`
	Height   *int      `yaml:"height" json:"height"`
	Selector *string   `yaml:"selector" json:"selector"`
	Embed    *bool     `yaml:"embed" json:"embed"`
}

// Duration accepts Go duration strings such as "250ms" or "1m".
type Duration struct {
	time.Duration
}
