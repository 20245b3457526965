// SPDX-License-Identifier: MPL-2.0

// Command reqline parses console command lines into structured requests.
package main

import cmd "github.com/reqline/reqline/cmd/reqline"

func main() {
	cmd.Execute()
}
