package display

import (
	"fmt"
	"os"

	"github.com/backmassage/sensweep/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Magenta != "" {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, ` ___  ___ _ __  _____      _____  ___ _ __
/ __|/ _ \ '_ \/ __\ \ /\ / / _ \/ _ \ '_ \
\__ \  __/ | | \__ \\ V  V /  __/  __/ |_) |
|___/\___|_| |_|___/ \_/\_/ \___|\___| .__/
                                     |_|
`)
	if term.Magenta != "" {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
