package validation

import (
	"strings"
	"testing"
)

func TestValidateOutputFormat(t *testing.T) {
	for _, format := range OutputFormats {
		if err := ValidateOutputFormat(format); err != nil {
			t.Errorf("ValidateOutputFormat(%q) error = %v", format, err)
		}
	}

	rejected := map[string]string{
		"Empty":             "",
		"Yaml":              "yaml",
		"Uppercase":         "CSV",
		"Padded":            " json ",
		"Prefix of a valid": "pre",
		"Suffix added":      "pretty-print",
	}
	for name, format := range rejected {
		t.Run(name, func(t *testing.T) {
			err := ValidateOutputFormat(format)
			if err == nil {
				t.Fatalf("ValidateOutputFormat(%q) expected error", format)
			}
			if !strings.Contains(err.Error(), "pretty, csv, json") {
				t.Errorf("error %q should list the supported formats", err)
			}
		})
	}
}
