package grammar

import "strconv"

// Reserved words scanned as KEYWORD tokens. `true`/`false` are handled
// separately as BOOL, and `this`/`super`/`now` deliberately stay plain
// identifiers, matching the grammar this package implements.
var keywords = map[string]bool{
	"pragma": true, "import": true, "as": true, "from": true,
	"contract": true, "interface": true, "library": true, "abstract": true,
	"is": true, "using": true, "global": true,
	"struct": true, "enum": true, "event": true, "error": true,
	"function": true, "modifier": true, "constructor": true,
	"fallback": true, "receive": true, "returns": true,
	"return": true, "if": true, "else": true, "for": true, "while": true,
	"do": true, "break": true, "continue": true, "throw": true,
	"emit": true, "revert": true, "try": true, "catch": true,
	"unchecked": true, "assembly": true, "let": true, "switch": true,
	"case": true, "default": true, "leave": true,
	"new": true, "delete": true, "after": true,
	"mapping": true, "memory": true, "storage": true, "calldata": true,
	"public": true, "private": true, "internal": true, "external": true,
	"pure": true, "view": true, "payable": true,
	"constant": true, "immutable": true, "virtual": true, "override": true,
	"indexed": true, "anonymous": true, "type": true, "var": true,
	"address": true, "bool": true, "string": true, "bytes": true,
	"byte": true, "int": true, "uint": true, "fixed": true, "ufixed": true,
	"wei": true, "gwei": true, "szabo": true, "finney": true, "ether": true,
	"seconds": true, "minutes": true, "hours": true, "days": true,
	"weeks": true, "years": true,
}

func isKeyword(text string) bool {
	if keywords[text] {
		return true
	}
	return isElementaryTypeName(text)
}

// isElementaryTypeName reports whether text names an elementary type,
// including the sized integer, bytes and fixed-point families. `uint7`
// or `bytes33` are not elementary types and scan as identifiers.
func isElementaryTypeName(text string) bool {
	switch text {
	case "address", "bool", "string", "var", "bytes", "byte", "int", "uint", "fixed", "ufixed":
		return true
	}
	switch {
	case hasPrefix(text, "uint"):
		return validIntSize(text[4:])
	case hasPrefix(text, "int"):
		return validIntSize(text[3:])
	case hasPrefix(text, "bytes"):
		n, err := strconv.Atoi(text[5:])
		return err == nil && 1 <= n && n <= 32
	case hasPrefix(text, "ufixed"):
		return validFixedSize(text[6:])
	case hasPrefix(text, "fixed"):
		return validFixedSize(text[5:])
	}
	return false
}

func validIntSize(suffix string) bool {
	n, err := strconv.Atoi(suffix)
	return err == nil && n%8 == 0 && 8 <= n && n <= 256
}

// fixedMxN: two decimal sizes joined by 'x', e.g. fixed128x18.
func validFixedSize(suffix string) bool {
	for i := 0; i < len(suffix); i++ {
		if suffix[i] == 'x' {
			_, errM := strconv.Atoi(suffix[:i])
			_, errN := strconv.Atoi(suffix[i+1:])
			return errM == nil && errN == nil
		}
	}
	return false
}

func hasPrefix(s, prefix string) bool {
	return len(s) > len(prefix) && s[:len(prefix)] == prefix
}

// Keywords the surrounding grammar re-admits as identifiers.
var identifierKeywords = map[string]bool{
	"from": true, "error": true, "revert": true, "global": true,
	"constructor": true, "receive": true, "fallback": true,
	"calldata": true, "leave": true,
}

// Denomination suffixes on number literals.
var numberUnits = map[string]bool{
	"wei": true, "gwei": true, "szabo": true, "finney": true, "ether": true,
	"seconds": true, "minutes": true, "hours": true, "days": true,
	"weeks": true, "years": true,
}
