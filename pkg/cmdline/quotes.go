// SPDX-License-Identifier: MPL-2.0

package cmdline

import "strings"

// TrimQuotes strips the outer quotes from a token.
//
// When the first and last characters are the same quote character, every leading and
// trailing occurrence of that character is removed, so `"""a"""` becomes `a`. Tokens
// that do not start and end with the same quote are returned unchanged.
func TrimQuotes(token string) string {
	if token == "" {
		return token
	}

	first, last := token[0], token[len(token)-1]
	if first != last {
		return token
	}

	switch QuoteKind(first) {
	case QuoteSingle, QuoteDouble:
		return strings.Trim(token, string(first))
	default:
		return token
	}
}
