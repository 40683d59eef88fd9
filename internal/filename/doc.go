// Package filename extracts an optional amount and currency from a file's base name.
//
// # Grammar
//
// Names are matched from the start; anything after the last recognised token
// (typically the extension) is ignored:
//
//	<letters>_<digits>[_<digits>][_<digits-or-letters>]
//
// The first digit run is the integer part of the amount. An optional second
// digit run is the fractional part. The optional trailing run is a currency
// code when it is alphabetic and at least three letters long; a numeric
// trailing run is never a currency.
//
// # Examples
//
//	invoice_100.txt         amount 100    currency DKK
//	invoice_100_50.txt      amount 100.5  currency DKK
//	invoice_100_usd.txt     amount 100    currency usd
//	invoice_100_50_usd.txt  amount 100.5  currency usd
//	notes.txt               no amount     no currency
//
// Tokenize exposes the intermediate runs so each disambiguation step can be
// tested on its own; Parser.Parse turns tokens into a Result.
package filename
