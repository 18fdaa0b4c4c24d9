package civics

import "strings"

// Role keys for the leaders mapping. Position names are canonicalized to
// one of these at data-load time so that request-time resolution is an
// exact-match dispatch, not repeated substring probing.
const (
	RoleGovernor       = "governor"
	RoleDeputyGovernor = "dep_governor"
	RoleSenator        = "senator"
	RoleWomenRep       = "women_rep"
	RoleMP             = "mp"
)

// ClassifyPositionName maps a raw position name to its role key, or ""
// when the name matches no known office. Matching is case-insensitive on
// the trimmed name; first match wins.
//
// The registry data is messy: "Women Rep", "Woman Representative" and
// "Women Representative" all occur, as do "Deputy Governor" and
// "Dep Governor".
func ClassifyPositionName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ""
	}

	hasGovernor := strings.Contains(n, "governor")
	hasDeputy := strings.Contains(n, "deputy") || strings.Contains(n, "dep ")

	switch {
	case hasGovernor && !hasDeputy:
		return RoleGovernor
	case hasGovernor && hasDeputy:
		return RoleDeputyGovernor
	case strings.Contains(n, "senator"):
		return RoleSenator
	case (strings.Contains(n, "women") || strings.Contains(n, "woman")) && strings.Contains(n, "rep"):
		return RoleWomenRep
	case n == "mp" || (strings.Contains(n, "member") && strings.Contains(n, "parliament")):
		return RoleMP
	}
	return ""
}

// NormalizeAbbreviations splits a raw party abbreviation string as stored
// by the registry ("{ODM, Orange Democratic Movement}") into clean tokens.
// Empty tokens are dropped.
func NormalizeAbbreviations(raw string) []string {
	var out []string
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		tok = strings.ReplaceAll(tok, "{", "")
		tok = strings.ReplaceAll(tok, "}", "")
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// independentLabel is used wherever an official has no party, and also
// when a party exists but carries no abbreviation.
const independentLabel = "Independent"

// PrimaryAbbreviation returns the display abbreviation for a normalized
// abbreviation list: the first entry, or "Independent" when there is none.
func PrimaryAbbreviation(abbrs []string) string {
	if len(abbrs) == 0 {
		return independentLabel
	}
	return abbrs[0]
}

// BucketGender folds arbitrary gender values into the three aggregate
// buckets. Anything unrecognized counts as "other".
func BucketGender(g string) string {
	switch strings.ToLower(strings.TrimSpace(g)) {
	case "male":
		return "male"
	case "female":
		return "female"
	default:
		return "other"
	}
}
