// SPDX-License-Identifier: MPL-2.0

package main

import cmd "hopperpack/cmd/hopperpack"

func main() {
	cmd.Execute()
}
