// lexer.go: byte-level scanning for the lambda surface syntax.
package lambda

// The grammar has no real token stream: names and de Bruijn indices are
// single bytes, everything else is punctuation the parser matches directly.
// These helpers scan the two one-byte token classes and consume malformed
// multi-byte runs in one piece so the parser never re-lexes the same bad
// input.

func eatWhite(src string, i int) int {
	for i < len(src) {
		switch src[i] {
		case ' ', '\t', '\n':
			i++
		default:
			return i
		}
	}
	return i
}

func idxFromLetter(c byte) uint8 { return c - 'a' }
func idxFromDigit(c byte) uint8  { return c - '0' }

// lexVarname scans a variable name at i. On a letter it returns the token of
// the FIRST letter and the end of the whole letter run; a run longer than one
// byte records a syntax error but still lexes. On anything else it returns
// token -1 without consuming.
func (a *Ast) lexVarname(i int) (int32, int) {
	if i >= len(a.src) || idxFromLetter(a.src[i]) >= maxToks {
		return -1, i
	}
	token := int32(idxFromLetter(a.src[i]))

	z := i + 1
	if z >= len(a.src) || idxFromLetter(a.src[z]) >= maxToks {
		return token, z
	}
	for z < len(a.src) && idxFromLetter(a.src[z]) < maxToks {
		z++
	}
	a.addSyntaxError(i, "Multi-byte varnames aren't allowed.  '%s'", a.src[i:z])
	return token, z
}

// lexInt scans a decimal de Bruijn index at i, with the same one-byte rule
// and error recovery as lexVarname.
func (a *Ast) lexInt(i int) (int32, int) {
	if i >= len(a.src) || idxFromDigit(a.src[i]) >= 10 {
		return -1, i
	}
	token := int32(idxFromDigit(a.src[i]))

	z := i + 1
	if z >= len(a.src) || idxFromDigit(a.src[z]) >= 10 {
		return token, z
	}
	for z < len(a.src) && idxFromDigit(a.src[z]) < 10 {
		z++
	}
	a.addSyntaxError(i, "Multi-digit nums aren't allowed.  '%s'", a.src[i:z])
	return token, z
}
