package factor

import (
	"cmp"
	"slices"
	"unicode/utf8"
)

// Compare orders factors for combination: fewer variables first, then the larger sum of
// the first character of each scope variable name first. It only affects the order of
// arithmetic and the operation counts, never the answer.
func Compare(a, b *Factor) int {
	if c := cmp.Compare(len(a.scope), len(b.scope)); c != 0 {
		return c
	}
	return cmp.Compare(initialsSum(b.scope), initialsSum(a.scope))
}

// SortForElimination sorts fs in place with Compare. Equal factors keep their relative order.
func SortForElimination(fs []*Factor) {
	slices.SortStableFunc(fs, Compare)
}

func initialsSum(scope []string) int {
	sum := 0
	for _, name := range scope {
		r, _ := utf8.DecodeRuneInString(name)
		if r != utf8.RuneError {
			sum += int(r)
		}
	}
	return sum
}
