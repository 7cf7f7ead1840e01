package domain

// ThemePreset is one of the built-in visual presets.
type ThemePreset string

const (
	PresetAurora   ThemePreset = "aurora"
	PresetSolar    ThemePreset = "solar"
	PresetMidnight ThemePreset = "midnight"
)

// Theme describes the visual styling of a public page.
type Theme struct {
	Preset     ThemePreset `json:"preset"`
	Background string      `json:"background"`
	Text       string      `json:"text"`
	Button     string      `json:"button"`
	Radius     string      `json:"radius"`
}

var presets = map[ThemePreset]Theme{
	PresetAurora: {
		Preset:     PresetAurora,
		Background: "from-purple-500 via-indigo-500 to-sky-500",
		Text:       "text-white",
		Button:     "bg-white/10 text-white hover:bg-white/20",
		Radius:     "xl",
	},
	PresetSolar: {
		Preset:     PresetSolar,
		Background: "from-amber-400 via-orange-500 to-rose-500",
		Text:       "text-slate-950",
		Button:     "bg-white text-slate-900 hover:bg-white/80",
		Radius:     "lg",
	},
	PresetMidnight: {
		Preset:     PresetMidnight,
		Background: "from-slate-900 via-slate-800 to-slate-900",
		Text:       "text-slate-100",
		Button:     "bg-slate-800 text-slate-100 hover:bg-slate-700",
		Radius:     "2xl",
	},
}

// DefaultTheme returns the theme applied to new profiles.
func DefaultTheme() Theme {
	return presets[PresetAurora]
}

// Presets returns the built-in presets in a stable order.
func Presets() []Theme {
	return []Theme{presets[PresetAurora], presets[PresetSolar], presets[PresetMidnight]}
}

// ResolveTheme fills empty fields of t from its preset. An empty preset
// resolves to the default. Unknown presets are rejected.
func ResolveTheme(t Theme) (Theme, error) {
	if t.Preset == "" {
		t.Preset = PresetAurora
	}
	base, ok := presets[t.Preset]
	if !ok {
		return Theme{}, NewValidationError("theme.preset", "unknown preset")
	}
	if t.Background == "" {
		t.Background = base.Background
	}
	if t.Text == "" {
		t.Text = base.Text
	}
	if t.Button == "" {
		t.Button = base.Button
	}
	if t.Radius == "" {
		t.Radius = base.Radius
	}
	return t, nil
}
