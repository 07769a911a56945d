// assets/assets.go
package assets

import "embed"

// ThemesDir is the directory of system theme documents inside ThemesFS.
const ThemesDir = "themes"

//go:embed themes/*.yaml
var ThemesFS embed.FS
