package ctl

import "sort"

// ----------------------------------------------------------------------------
// Reserved tables
//
// These mirror the tables in the original linter's tokenizer.py 1:1 (library
// type names included) so that the lexer recognizes the same CTL surface.
// They are read-only after init(): nothing in the lexer or parser mutates
// them at runtime.

var reservedKeywords = []string{
	"while", "for", "return", "break", "continue",
	"true", "false", "null", "uses", "const",
	"enum", "switch", "case", "default",
	"struct", "class", "try", "catch", "finally", "do", "new",
}

var modifierKeywords = []string{"static", "global", "synchronized"}

var accessModifierKeywords = []string{"public", "private", "protected"}

var baseTypeKeywords = []string{
	"string", "int", "float", "bool", "void", "mapping", "file",
	"uint", "time", "anytype", "errClass", "mixed", "ulong", "char",
	"unsigned", "bit64", "shape", "bit32", "long", "palette",
}

var libraryTypeKeywords = []string{
	"OaTestResultEnvironment", "OaTestResultStatistic", "LogEntry",
	"OaTestResult", "OsInfo", "TfString", "ProjEnvProject",
	"fitLookUpTable", "ProjEnvComponent", "JsonFile",
	"OaTestResultFileFormat", "TfTestRunner", "LogReader",
	"TfTestProject", "TfNotifier", "TfErrHdl", "Scope", "Trend",
}

var templateTypeKeywords = []string{"vector", "shared_ptr"}

var arithmeticOperators = sortedByLenDesc([]string{"+", "-", "*", "/", "%", "++", "--"})
var assignmentOperators = sortedByLenDesc([]string{"+=", "-=", "*=", "/=", "%=", "="})
var comparisonOperators = sortedByLenDesc([]string{"==", "!=", ">", ">=", "<", "<="})
var logicalOperators = sortedByLenDesc([]string{"&&", "||", "!"})

var symbolTable = sortedByLenDesc([]string{
	"(", ")", "{", "}", "[", "]", ",", ";", ":", ".",
	"$", "#", "?", "&", "|", "^", "~", "::", "<<", ">>",
})

// typeKeywords is built once at package init: every base type keyword plus
// its dyn_ and dyn_dyn_ collection variants, in descending-length order so
// the longest (and therefore most specific) match wins during lexing.
var typeKeywords = buildTypeKeywords()

func buildTypeKeywords() []string {
	all := make([]string, 0, len(baseTypeKeywords)*3)
	for _, base := range baseTypeKeywords {
		all = append(all, base, "dyn_"+base, "dyn_dyn_"+base)
	}
	return sortedByLenDesc(all)
}

func sortedByLenDesc(in []string) []string {
	out := append([]string(nil), in...)
	sort.Slice(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}
