package builder

import "strings"

// defaultIndentUnit is used when an object carries no property whose
// indentation could be observed.
const defaultIndentUnit = "    "

// objectStyle captures the formatting facts of one object literal. It is
// derived once from the original text and drives how inserted property lines
// are rendered; it never reformats bytes that an edit does not touch.
type objectStyle struct {
	// multiline means the body already contains a newline.
	multiline bool
	// propIndent is the full leading whitespace for property lines. When a
	// property exists its own indentation is copied verbatim, so the derived
	// unit is never stronger than what the file actually uses.
	propIndent string
	// closeIndent is the leading whitespace of the line that should carry
	// the closing brace.
	closeIndent string
	// trailingComma means the last property is followed by a comma.
	trailingComma bool
	// spacePadded means a single-line body is written `{ a: 1 }`.
	spacePadded bool
}

// detectStyle derives the formatting style of an object literal whose body
// occupies original[contentStart:contentEnd] (exclusive of both braces).
func detectStyle(original string, contentStart, contentEnd uint32, props []Property) objectStyle {
	content := original[contentStart:contentEnd]
	st := objectStyle{
		multiline: strings.ContainsRune(content, '\n'),
	}

	braceIndent := lineIndent(original, contentStart)
	st.closeIndent = braceIndent

	if len(props) == 0 {
		st.spacePadded = !st.multiline && strings.ContainsRune(content, ' ')
		st.propIndent = braceIndent + defaultIndentUnit
		return st
	}

	st.trailingComma = props[len(props)-1].CommaTok >= 0

	if st.multiline {
		if ind, ok := ownLineIndent(original, props[0].KeyStart); ok {
			st.propIndent = ind
		} else {
			// first property shares the open brace's line
			st.propIndent = braceIndent + defaultIndentUnit
		}
		if ind, ok := ownLineIndent(original, contentEnd); ok {
			st.closeIndent = ind
		}
		return st
	}

	st.spacePadded = strings.HasPrefix(content, " ")
	return st
}

// lineIndent returns the leading horizontal whitespace of the line that
// contains off.
func lineIndent(text string, off uint32) string {
	start := lineStartAt(text, off)
	i := start
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	return text[start:i]
}

// ownLineIndent returns the whitespace preceding off on its line, but only
// when nothing else stands before it; ok is false when off does not start
// its line.
func ownLineIndent(text string, off uint32) (string, bool) {
	start := lineStartAt(text, off)
	for i := start; i < int(off); i++ {
		if text[i] != ' ' && text[i] != '\t' {
			return "", false
		}
	}
	return text[start:int(off)], true
}

// lineStartAt returns the byte offset of the first character of the line
// containing off.
func lineStartAt(text string, off uint32) int {
	i := int(off)
	if i > len(text) {
		i = len(text)
	}
	if idx := strings.LastIndexByte(text[:i], '\n'); idx >= 0 {
		return idx + 1
	}
	return 0
}
