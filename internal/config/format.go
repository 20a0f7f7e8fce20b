package config

import (
	"strings"

	"github.com/example/go-wavtone/internal/sample"
)

const (
	DefaultFormat = "i16"

	// FormatAll selects every built-in format.
	FormatAll = "all"
)

// NormalizeFormat resolves a configured format name to its canonical form.
// Empty selects DefaultFormat.
func NormalizeFormat(raw string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	switch name {
	case "":
		return DefaultFormat, nil
	case FormatAll:
		return FormatAll, nil
	}

	f, err := sample.Lookup(name)
	if err != nil {
		return "", err
	}

	return f.Name(), nil
}

func formatNames() []string {
	return append(sample.Names(), FormatAll)
}
