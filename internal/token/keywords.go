package token

// Declaration starter keywords dispatched by the grouper.
const (
	KwClass     = "class"
	KwInterface = "interface"
	KwEnum      = "enum"
	KwType      = "type"
	KwFunction  = "function"
	KwConst     = "const"
	KwLet       = "let"
	KwVar       = "var"
	KwImport    = "import"
)

// keywords is the full recognized keyword set. Words outside it lex as Ident,
// which keeps the grouper honest about the language subset it understands.
var keywords = map[string]struct{}{
	KwClass:      {},
	KwInterface:  {},
	KwEnum:       {},
	KwType:       {},
	KwFunction:   {},
	KwConst:      {},
	KwLet:        {},
	KwVar:        {},
	KwImport:     {},
	"export":     {},
	"default":    {},
	"declare":    {},
	"abstract":   {},
	"async":      {},
	"static":     {},
	"readonly":   {},
	"public":     {},
	"private":    {},
	"protected":  {},
	"extends":    {},
	"implements": {},
	"from":       {},
	"as":         {},
	"in":         {},
	"of":         {},
	"keyof":      {},
	"typeof":     {},
	"new":        {},
	"return":     {},
}

// LookupKeyword reports whether word is a recognized keyword.
func LookupKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

// IsDeclStarter reports whether word begins a groupable declaration.
func IsDeclStarter(word string) bool {
	switch word {
	case KwClass, KwInterface, KwEnum, KwType, KwFunction, KwConst, KwLet, KwVar, KwImport:
		return true
	default:
		return false
	}
}

// IsDeclModifier reports whether word may prefix a declaration keyword.
func IsDeclModifier(word string) bool {
	switch word {
	case "export", "default", "declare", "abstract", "async":
		return true
	default:
		return false
	}
}
