// Package fracindex generates lexicographically sortable string keys over
// the base-36 alphabet 0-9a-z. Inserting a sibling between two others only
// requires generating one new key, which keeps reordering CRDT-friendly:
// no neighbor ever has to be rewritten.
//
// Keys are fractions in (0, 1) written without the leading "0.", in their
// canonical form with trailing zero digits trimmed. Under that form plain
// string comparison agrees with numeric comparison, so callers can sort
// keys with the native string order.
package fracindex

import (
	"errors"
	"fmt"
	"strings"
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

const base = len(alphabet)

// midKey is returned when both bounds are open.
const midKey = "i"

// ErrInvalidRange is returned when the lower bound is not strictly below
// the upper bound.
var ErrInvalidRange = errors.New("lower bound must be strictly below upper bound")

// KeyBetween returns a key strictly between lo and hi. A nil bound is open:
// KeyBetween(nil, hi) returns a key below hi, KeyBetween(lo, nil) a key
// above lo, and KeyBetween(nil, nil) the fixed mid-alphabet key.
func KeyBetween(lo, hi *string) (string, error) {
	if lo != nil {
		if err := validateKey(*lo); err != nil {
			return "", err
		}
	}
	if hi != nil {
		if err := validateKey(*hi); err != nil {
			return "", err
		}
	}

	switch {
	case lo == nil && hi == nil:
		return midKey, nil
	case lo == nil:
		return midpoint("", *hi), nil
	case hi == nil:
		return keyAbove(*lo), nil
	default:
		if *lo >= *hi {
			return "", fmt.Errorf("%w: %q >= %q", ErrInvalidRange, *lo, *hi)
		}
		return midpoint(*lo, *hi), nil
	}
}

// NKeysBetween returns n strictly increasing keys inside (lo, hi). The
// range is subdivided recursively around its midpoint so key length grows
// O(log n) instead of linearly when many keys land in the same gap.
func NKeysBetween(lo, hi *string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	if n == 1 {
		k, err := KeyBetween(lo, hi)
		if err != nil {
			return nil, err
		}
		return []string{k}, nil
	}

	mid, err := KeyBetween(lo, hi)
	if err != nil {
		return nil, err
	}
	left, err := NKeysBetween(lo, &mid, n/2)
	if err != nil {
		return nil, err
	}
	right, err := NKeysBetween(&mid, hi, n-n/2-1)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, n)
	out = append(out, left...)
	out = append(out, mid)
	out = append(out, right...)
	return out, nil
}

// Compare orders two keys. It is plain lexicographic comparison and always
// agrees with the native string sort.
func Compare(a, b string) int {
	return strings.Compare(a, b)
}

// midpoint computes (a+b)/2 exactly, treating both strings as big
// variable-length base-36 fractions. Both are padded to a common length
// plus one extra zero digit, which guarantees the final halving step has no
// remainder left over (the base is even). Digit sums run right to left with
// carry; the halving pass runs left to right with a running remainder.
// Trailing zero digits are trimmed to keep the result canonical.
func midpoint(a, b string) string {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	n++

	sum := make([]int, n+1) // sum[0] holds the carry out of the top digit
	carry := 0
	for i := n - 1; i >= 0; i-- {
		s := digitAt(a, i) + digitAt(b, i) + carry
		carry = s / base
		sum[i+1] = s % base
	}
	sum[0] = carry

	out := make([]byte, 0, n)
	rem := sum[0]
	for i := 1; i <= n; i++ {
		cur := rem*base + sum[i]
		out = append(out, alphabet[cur/2])
		rem = cur % 2
	}

	trimmed := strings.TrimRight(string(out), "0")
	return trimmed
}

// keyAbove returns a short key strictly above a, for the open upper bound:
// the first non-terminal digit is bumped and the rest discarded, so
// repeated appends at the end of a list stay one digit long for 25 steps
// before growing.
func keyAbove(a string) string {
	for i := 0; i < len(a); i++ {
		if a[i] != 'z' {
			return a[:i] + string(alphabet[digitValue(a[i])+1])
		}
	}
	return a + midKey
}

func digitAt(s string, i int) int {
	if i >= len(s) {
		return 0
	}
	return digitValue(s[i])
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	default:
		return int(c-'a') + 10
	}
}

func validateKey(key string) error {
	if key == "" {
		return errors.New("key must not be empty")
	}
	if strings.HasSuffix(key, "0") {
		return fmt.Errorf("key %q has a trailing zero digit", key)
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'z') {
			return fmt.Errorf("key %q contains invalid digit %q", key, c)
		}
	}
	return nil
}

// EvenKeys returns n keys evenly spread over the whole key space, in
// increasing order. It is the building block for migrating integer-ordered
// data into the fractional scheme.
func EvenKeys(n int) ([]string, error) {
	return NKeysBetween(nil, nil, n)
}
