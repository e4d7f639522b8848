package naming

// DefaultReserved are identifiers that cannot be used as-is in the target:
// C and Objective-C keywords, common typedefs and the NSObject messages a
// translated method could accidentally override.
var DefaultReserved = []string{
	// C
	"auto", "break", "case", "char", "const", "continue", "default", "do",
	"double", "else", "enum", "extern", "float", "for", "goto", "if",
	"inline", "int", "long", "register", "restrict", "return", "short",
	"signed", "sizeof", "static", "struct", "switch", "typedef", "union",
	"unsigned", "void", "volatile", "while",
	// Objective-C
	"id", "self", "super", "nil", "Nil", "YES", "NO", "BOOL", "Class", "SEL",
	"IMP", "Protocol", "NULL", "bool", "true", "false",
	// NSObject
	"alloc", "attributeKeys", "autoContentAccessingProxy", "autorelease",
	"classCode", "classDescription", "classForArchiver",
	"classForKeyedArchiver", "classFallbacksForKeyedArchiver",
	"classForPortCoder", "className", "copy", "dealloc", "description",
	"hash", "init", "initialize", "isProxy", "load", "mutableCopy", "new",
	"release", "retain", "retainCount", "scriptingProperties",
	"superclass", "toManyRelationshipKeys", "toOneRelationshipKeys",
	"version",
}

// DefaultBadParams are Objective-C type qualifiers, legal everywhere except
// as parameter names.
var DefaultBadParams = []string{"in", "out", "inout", "oneway", "bycopy", "byref"}

// DefaultSeparator joins outer and inner type names.
const DefaultSeparator = "_"
