// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/invowk/cmdrunner/cmd/cmdrunner"

func main() {
	cmd.Execute()
}
