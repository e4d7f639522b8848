package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// model loading
	ModelInfo          Code = 1000
	ModelBadSchema     Code = 1001
	ModelBadUnit       Code = 1002
	ModelEmptyUniverse Code = 1003

	// symbol/scope binding
	SymInfo                    Code = 3000
	SymUnsupportedFreeFunction Code = 3001
	SymUnknownQueuedName       Code = 3002
	SymInvariantViolation      Code = 3003
	SymMissingDeclaration      Code = 3004

	// renaming
	NameInfo          Code = 4000
	NameReservedWord  Code = 4001
	NameBadParameter  Code = 4002
	NamePrefixMapping Code = 4003

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                "Unknown error",
	ModelInfo:                  "Model information",
	ModelBadSchema:             "Unsupported model schema",
	ModelBadUnit:               "Malformed compilation unit",
	ModelEmptyUniverse:         "Model has no bindings",
	SymInfo:                    "Symbol information",
	SymUnsupportedFreeFunction: "Method without declaring type is not supported",
	SymUnknownQueuedName:       "Queued type name does not resolve to a binding",
	SymInvariantViolation:      "Symbol table invariant violation",
	SymMissingDeclaration:      "Declaration node carries no binding",
	NameInfo:                   "Naming information",
	NameReservedWord:           "Name collides with a reserved word",
	NameBadParameter:           "Parameter name collides with a target keyword",
	NamePrefixMapping:          "Package prefix mapping applied",
	ObsInfo:                    "Observability information",
	ObsTimings:                 "Timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("MDL%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SYM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("NAM%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
