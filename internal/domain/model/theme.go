package model

type Theme string

const (
	ThemeVelvet     Theme = "velvet"
	ThemeNightlight Theme = "nightlight"
	ThemeDark       Theme = "dark"
	ThemeLight      Theme = "light"
)

// 初回はvelvet
const DefaultTheme = ThemeVelvet

func (t Theme) Valid() bool {
	switch t {
	case ThemeVelvet, ThemeNightlight, ThemeDark, ThemeLight:
		return true
	}
	return false
}
