// SPDX-License-Identifier: MPL-2.0

// Package request holds a parsed console request: a command name, its positional
// arguments, and its options in the order they were given.
//
// Request implements cmdline.Sink. Options are multi-valued: each occurrence of a name is
// kept as its own entry, so "--tag a --tag b" yields two tag options.
package request
