package main

import (
	"fmt"
	"os"
	"strings"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", errInvalidChoice("--ui", value, "auto|on|off")
	}
}

// shouldUseTUI reports whether the progress UI runs. Structured output
// keeps stdout clean, so auto mode only enables it for text.
func shouldUseTUI(mode uiMode, structured bool) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return !structured && isTerminal(os.Stdout)
	}
}

func errInvalidChoice(flag, value, choices string) error {
	return fmt.Errorf("invalid %s value %q (expected %s)", flag, value, choices)
}
