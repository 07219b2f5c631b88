package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/banker"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// Problems writes a titled bullet list of errors, or nothing if errs is empty.
func Problems(w io.Writer, title string, errs []error) {
	ConditionalBlock(w, func(w io.Writer) bool {
		fmt.Fprintf(w, "## %s\n\n", title)
		for _, err := range errs {
			fmt.Fprintf(w, "* %s\n", err)
		}
		return len(errs) > 0
	})
}

// joinDates formats dates as a comma separated list.
func joinDates(dates []banker.Date) string {
	s := make([]string, len(dates))
	for i, d := range dates {
		s[i] = d.String()
	}
	return strings.Join(s, ", ")
}

// errorStrings formats errors one per line, skipping the missing statements
// errors that are rendered in the directory tables.
func errorStrings(errs []error) []string {
	var s []string
	for _, err := range errs {
		if _, ok := err.(*banker.MissingStatementsError); ok {
			continue
		}
		s = append(s, err.Error())
	}
	return s
}
