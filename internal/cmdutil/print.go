package cmdutil

import (
	"fmt"
	"io"

	"sdscan/internal/writers"
)

// Printf writes one report line to dst. A reader that went away (broken
// pipe) is not an error.
func Printf(dst io.Writer, format string, a ...any) error {
	if _, err := fmt.Fprintf(dst, format, a...); err != nil && !writers.IsBrokenPipe(err) {
		return err
	}
	return nil
}
