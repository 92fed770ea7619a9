package binding

import (
	"strings"
	"unicode"
)

// NamingPolicy translates a member's own name to a document field name. It is
// applied only when the member carries no explicit name in its tag.
type NamingPolicy func(memberName string) string

// Identity uses the member name as-is.
func Identity(memberName string) string { return memberName }

// LowerUnderscore inserts an underscore before every uppercase letter not at
// position zero and lower-cases it, so CreatedAt becomes created_at and
// HTTPCode becomes h_t_t_p_code. Consecutive capitals each get their own
// separator; there is no acronym collapsing.
func LowerUnderscore(memberName string) string {
	var sb strings.Builder
	sb.Grow(len(memberName) + 4)
	for i, r := range memberName {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// LowerCase folds the member name to lower case.
func LowerCase(memberName string) string { return strings.ToLower(memberName) }
