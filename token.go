package cellid

import (
	"strconv"
	"strings"
)

// invalidString is the canonical rendering of an invalid cell id.
const invalidString = "INVALID"

// Token returns a compact alphanumeric encoding of this cell id, suitable
// for display or indexing. Larger cells get shorter tokens (at most 16
// characters). Tokens preserve ordering: Token(x) < Token(y) iff x < y, and
// CellIDFromToken(ci.Token()) == ci even for the invalid id, which encodes
// as "X".
func (ci CellID) Token() string {
	if uint64(ci) == 0 {
		return "X"
	}
	// The id in hex without trailing zeros. Hex keeps tokens alphanumeric,
	// case-insensitive, and safe in query strings.
	s := strconv.FormatUint(uint64(ci), 16)
	if len(s) < 16 {
		s = strings.Repeat("0", 16-len(s)) + s
	}
	return strings.TrimRight(s, "0")
}

// CellIDFromToken decodes a token produced by Token. Malformed input yields
// the invalid id, never an error: tokens commonly arrive from users, flags
// and query strings.
func CellIDFromToken(s string) CellID {
	if len(s) == 0 || len(s) > 16 {
		return None()
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return None()
		}
	}
	n, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return None()
	}
	// Equivalent to right-padding the token with zeros to 16 characters.
	return CellID(n << (4 * uint(16-len(s))))
}

// String renders the cell id in the canonical human-readable form
// "<face>/<path>", where each path digit 0..3 is a child position from the
// face cell down to this cell. Face cells render as just "<face>", invalid
// ids as "INVALID".
func (ci CellID) String() string {
	if !ci.IsValid() {
		return invalidString
	}
	var b strings.Builder
	b.WriteByte('0' + byte(ci.Face()))
	level := ci.Level()
	if level == 0 {
		return b.String()
	}
	b.WriteByte('/')
	for l := 1; l <= level; l++ {
		b.WriteByte('0' + byte(ci.ChildPositionAt(l)))
	}
	return b.String()
}

// CellIDFromString parses the format produced by String. A trailing slash
// after the face digit is accepted ("4/" equals "4"). Any violation (face
// not a single digit in [0,5], path digit out of [0,3], path longer than
// MaxLevel) yields the invalid id rather than an error.
func CellIDFromString(s string) CellID {
	faceStr, path, found := strings.Cut(s, "/")
	if len(faceStr) != 1 || faceStr[0] < '0' || faceStr[0] > '5' {
		return None()
	}
	ci := CellIDFromFace(int(faceStr[0] - '0'))
	if !found || len(path) == 0 {
		return ci
	}
	if len(path) > maxLevel {
		return None()
	}
	for i := 0; i < len(path); i++ {
		c := path[i]
		if c < '0' || c > '3' {
			return None()
		}
		ci = ci.Child(int(c - '0'))
	}
	return ci
}
