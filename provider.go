package xrate

import (
	"fmt"
	"strings"
)

// Provider names the upstream service a URL policy and the archived rows
// belong to.
type Provider string

const (
	FixerProvider  Provider = "fixer"
	MirrorProvider Provider = "mirror"
)

func ConvertToProviderFromString(str string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "fixer", "fixer.io", "fixer_io":
		return FixerProvider, nil
	case "mirror":
		return MirrorProvider, nil
	}

	return "", fmt.Errorf("value %s is not valid Provider", str)
}
