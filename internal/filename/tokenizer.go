package filename

// Delimiter separates the runs of a structured file name.
const Delimiter = '_'

// SuffixKind classifies the optional trailing run.
type SuffixKind int

const (
	SuffixNone SuffixKind = iota
	SuffixNumeric
	SuffixAlphabetic
)

// String returns a human-readable name for the kind.
func (k SuffixKind) String() string {
	switch k {
	case SuffixNone:
		return "none"
	case SuffixNumeric:
		return "numeric"
	case SuffixAlphabetic:
		return "alphabetic"
	default:
		return "unknown"
	}
}

// Tokens holds the runs recognised at the start of a file name.
// Matched is false when the name does not begin with letters, the delimiter
// and at least one digit; all other fields are then empty.
type Tokens struct {
	Matched    bool
	Prefix     string
	Integer    string
	Fraction   string
	Suffix     string
	SuffixKind SuffixKind
}

// Tokenize splits name into prefix, integer, fraction and suffix runs.
func Tokenize(name string) Tokens {
	c := cursor{s: name}

	prefix := c.run(isLetter)
	if prefix == "" || !c.delim() {
		return Tokens{}
	}
	integer := c.run(isDigit)
	if integer == "" {
		return Tokens{}
	}

	t := Tokens{Matched: true, Prefix: prefix, Integer: integer}

	// A digit run right after the integer is the fraction, never the suffix.
	if c.peekRun(isDigit) != "" {
		c.delim()
		t.Fraction = c.run(isDigit)
	}

	if digits := c.peekRun(isDigit); digits != "" {
		t.Suffix = digits
		t.SuffixKind = SuffixNumeric
	} else if letters := c.peekRun(isLetter); len(letters) >= minCurrencyLength {
		t.Suffix = letters
		t.SuffixKind = SuffixAlphabetic
	}

	return t
}

// cursor walks a name byte by byte. The grammar is ASCII only.
type cursor struct {
	s   string
	pos int
}

func (c *cursor) run(pred func(byte) bool) string {
	start := c.pos
	for c.pos < len(c.s) && pred(c.s[c.pos]) {
		c.pos++
	}
	return c.s[start:c.pos]
}

func (c *cursor) delim() bool {
	if c.pos < len(c.s) && c.s[c.pos] == Delimiter {
		c.pos++
		return true
	}
	return false
}

// peekRun returns the run following a delimiter without consuming it.
func (c *cursor) peekRun(pred func(byte) bool) string {
	if c.pos >= len(c.s) || c.s[c.pos] != Delimiter {
		return ""
	}
	end := c.pos + 1
	for end < len(c.s) && pred(c.s[end]) {
		end++
	}
	return c.s[c.pos+1 : end]
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
