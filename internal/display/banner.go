// Package display provides the startup banner and human-readable formatting
// helpers for sizes and counts.
package display

import (
	"fmt"
	"os"
)

// PrintBanner prints the ASCII art banner to stdout.
func PrintBanner() {
	fmt.Fprint(os.Stdout, `     _     _
  __| | __| |___  ___ ___  _ ____   __
 / _`+"`"+` |/ _`+"`"+` / __|/ __/ _ \| '_ \ \ / /
| (_| | (_| \__ \ (_| (_) | | | \ V /
 \__,_|\__,_|___/\___\___/|_| |_|\_/
`)
	fmt.Fprintln(os.Stdout)
}
