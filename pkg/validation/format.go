// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/iwvelando/pv-viability/pkg/constants"
)

// OutputFormats lists the report formats the CLI can write.
var OutputFormats = []string{
	constants.OutputFormatPretty,
	constants.OutputFormatCSV,
	constants.OutputFormatJSON,
}

// ValidateOutputFormat checks format against OutputFormats. Matching is exact.
func ValidateOutputFormat(format string) error {
	if slices.Contains(OutputFormats, format) {
		return nil
	}
	return fmt.Errorf("unsupported output format %q, expected one of %s",
		format, strings.Join(OutputFormats, ", "))
}
