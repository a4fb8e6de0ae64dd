package findreplace

import (
	"regexp"
)

// pattern compiles query as literal text. Empty queries never match.
func pattern(query string, caseSensitive bool) *regexp.Regexp {
	if query == "" {
		return nil
	}
	expr := regexp.QuoteMeta(query)
	if !caseSensitive {
		expr = "(?i)" + expr
	}
	return regexp.MustCompile(expr)
}

// Count returns the number of non-overlapping occurrences of query in content
func Count(content, query string, caseSensitive bool) int {
	re := pattern(query, caseSensitive)
	if re == nil {
		return 0
	}
	return len(re.FindAllStringIndex(content, -1))
}

// ReplaceFirst replaces the first occurrence of query in document order.
// The replacement is inserted literally.
func ReplaceFirst(content, query, replacement string, caseSensitive bool) (string, bool) {
	re := pattern(query, caseSensitive)
	if re == nil {
		return content, false
	}
	loc := re.FindStringIndex(content)
	if loc == nil {
		return content, false
	}
	return content[:loc[0]] + replacement + content[loc[1]:], true
}

// ReplaceAll replaces every occurrence in one pass and returns the count
func ReplaceAll(content, query, replacement string, caseSensitive bool) (string, int) {
	re := pattern(query, caseSensitive)
	if re == nil {
		return content, 0
	}
	n := len(re.FindAllStringIndex(content, -1))
	if n == 0 {
		return content, 0
	}
	return re.ReplaceAllLiteralString(content, replacement), n
}
