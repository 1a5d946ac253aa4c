package adapters

import (
	"os"

	"github.com/friendlymustache/KhanAcademyInterview/internal/adapters/primary/cli"
	ascii "github.com/friendlymustache/KhanAcademyInterview/internal/format/ascii"
	"github.com/mattn/go-isatty"
	do "github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

var PrimaryPackage = do.Package(
	do.Lazy[*ascii.Formatter](NewFormatter),
	do.Lazy[*cobra.Command](cli.Command),
)

// NewFormatter creates the output formatter, styling text only on a terminal.
func NewFormatter(_ do.Injector) (*ascii.Formatter, error) {
	fd := os.Stdout.Fd()

	return ascii.NewFormatter(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)), nil
}
