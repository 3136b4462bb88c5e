// Package version holds the shared version string and the banner printed by
// the litewrap command line tools.
package version

import "fmt"

const (
	Version = "v0.1.0"

	colorReset    = "\033[0m"
	colorCyanBold = "\033[36;1m"
)

// asciiArtTpl returns the ASCII art banner of litewrap.
func asciiArtTpl() string {
	asciiArt := `
    __    _ __
   / /   (_) /____ _      ______ ___  ____
  / /   / / __/ _ \ | /| / / __// _ \/ __ \
 / /___/ / /_/  __/ |/ |/ / /  / /_/ / /_/ /
/_____/_/\__/\___/|__/|__/_/   \__,_/ .___/
                                   /_/
%s ` + Version + `
An object access layer over the SQLite C API`

	asciiArt = asciiArt[1:]                          // This just removes the first newline character
	asciiArt = colorCyanBold + asciiArt + colorReset // Add color to the ASCII art

	return asciiArt
}

// ShellVersion returns the banner of the litewrap shell.
func ShellVersion() string {
	return fmt.Sprintf(asciiArtTpl(), "Shell")
}

// BenchVersion returns the banner of the litewrap benchmark tool.
func BenchVersion() string {
	return fmt.Sprintf(asciiArtTpl(), "Bench")
}
