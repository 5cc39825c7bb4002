package normalize

import "strings"

// Name suffixes that vary between data sources for the same player.
var nameSuffixes = map[string]struct{}{
	"jr": {}, "sr": {}, "ii": {}, "iii": {}, "iv": {}, "v": {},
}

// PlayerKey builds the cross-season identity key for a player name. No data
// source guarantees a stable numeric id across seasons, so name identity is
// the league-wide join key. Two real players sharing a normalized name will
// merge; that approximation is accepted, not a bug to fix here.
func PlayerKey(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-':
			b.WriteByte(' ')
		}
	}

	tokens := strings.Fields(b.String())
	for len(tokens) > 1 {
		last := tokens[len(tokens)-1]
		if _, ok := nameSuffixes[last]; !ok {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}
