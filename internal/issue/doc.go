// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of Markdown help pages.
//
// ActionableError carries the failed operation, the input involved, and suggestions for
// fixing it. The catalog maps parse, configuration, and server failures to help pages
// rendered with glamour.
package issue
