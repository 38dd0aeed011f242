package state

// Theme is the UI color theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Settings are per-session user preferences.
type Settings struct {
	SoundEnabled bool  `json:"sound_enabled"`
	MusicEnabled bool  `json:"music_enabled"`
	Theme        Theme `json:"theme"`
	ShowLocation bool  `json:"show_location"`
}

// SettingsPatch is a partial settings update; nil fields are left unchanged.
type SettingsPatch struct {
	SoundEnabled *bool  `json:"sound_enabled,omitempty"`
	MusicEnabled *bool  `json:"music_enabled,omitempty"`
	Theme        *Theme `json:"theme,omitempty"`
	ShowLocation *bool  `json:"show_location,omitempty"`
}
