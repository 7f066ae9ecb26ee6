package diag

import (
	"fmt"
)

// Code identifies a diagnostic condition. Ranges:
// 1xxx lexing, 2xxx I/O, 3xxx grouping, 4xxx edits.
type Code uint16

const (
	// UnknownCode is the catch-all for unclassified conditions.
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexUnterminatedTemplate     Code = 1004

	// I/O
	IOInfo          Code = 2000
	IOLoadFileError Code = 2001

	// Structural grouping
	GrpInfo              Code = 3000
	GrpMissingName       Code = 3001
	GrpUnclosedBrace     Code = 3002
	GrpUnclosedBracket   Code = 3003
	GrpUnclosedParen     Code = 3004
	GrpUnclosedAngle     Code = 3005
	GrpMissingImportPath Code = 3006
	GrpUnexpectedToken   Code = 3007

	// Edit queue
	EditInfo         Code = 4000
	EditInvalidRange Code = 4001
	EditOverlap      Code = 4002
)

var codeNames = map[Code]string{
	UnknownCode:                 "Unknown",
	LexInfo:                     "LexInfo",
	LexUnknownChar:              "LexUnknownChar",
	LexUnterminatedString:       "LexUnterminatedString",
	LexUnterminatedBlockComment: "LexUnterminatedBlockComment",
	LexUnterminatedTemplate:     "LexUnterminatedTemplate",
	IOInfo:                      "IOInfo",
	IOLoadFileError:             "IOLoadFileError",
	GrpInfo:                     "GrpInfo",
	GrpMissingName:              "GrpMissingName",
	GrpUnclosedBrace:            "GrpUnclosedBrace",
	GrpUnclosedBracket:          "GrpUnclosedBracket",
	GrpUnclosedParen:            "GrpUnclosedParen",
	GrpUnclosedAngle:            "GrpUnclosedAngle",
	GrpMissingImportPath:        "GrpMissingImportPath",
	GrpUnexpectedToken:          "GrpUnexpectedToken",
	EditInfo:                    "EditInfo",
	EditInvalidRange:            "EditInvalidRange",
	EditOverlap:                 "EditOverlap",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", uint16(c))
}

// ID returns the stable user-facing identifier, e.g. "QL1002".
func (c Code) ID() string {
	return fmt.Sprintf("QL%04d", uint16(c))
}
