package filename

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vvka-141/filemeta/pkg/filemeta"
)

const minCurrencyLength = filemeta.MinCurrencyLength

// Result is the outcome of parsing one file name.
// Currency is empty whenever Amount is not valid.
type Result struct {
	Amount   decimal.NullDecimal
	Currency string
}

// Parser turns file names into amount/currency pairs.
// Parser is immutable and safe for concurrent use.
type Parser struct {
	defaultCurrency string
}

// Option configures a Parser.
type Option func(*Parser)

// WithDefaultCurrency overrides the currency applied when a name carries an
// amount but no alphabetic currency token.
func WithDefaultCurrency(code string) Option {
	return func(p *Parser) {
		if code != "" {
			p.defaultCurrency = code
		}
	}
}

// NewParser creates a parser defaulting to filemeta.DefaultCurrency.
func NewParser(opts ...Option) *Parser {
	p := &Parser{defaultCurrency: filemeta.DefaultCurrency}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DefaultCurrency returns the currency applied to names without a currency token.
func (p *Parser) DefaultCurrency() string {
	return p.defaultCurrency
}

// Parse extracts the amount and currency from a base name.
// A name that does not start with letters, '_' and digits yields an empty Result.
func (p *Parser) Parse(name string) Result {
	return p.FromTokens(Tokenize(name))
}

// FromTokens builds a Result from already tokenized runs.
func (p *Parser) FromTokens(t Tokens) Result {
	if !t.Matched {
		return Result{}
	}

	amount, err := amountFromTokens(t)
	if err != nil {
		// Tokenize only yields digit runs, so this is unreachable in practice.
		return Result{}
	}

	currency := p.defaultCurrency
	if t.SuffixKind == SuffixAlphabetic {
		currency = t.Suffix
	}

	return Result{
		Amount:   decimal.NullDecimal{Decimal: amount, Valid: true},
		Currency: currency,
	}
}

func amountFromTokens(t Tokens) (decimal.Decimal, error) {
	text := t.Integer
	if t.Fraction != "" {
		text = t.Integer + "." + t.Fraction
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", text, err)
	}
	return d, nil
}
