// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

// The identity-sync command reconciles membership between identifier sources
// and remote destinations: Qualtrics XM Directory mailing lists and
// access-control workgroups.
package main

import (
	"os"
)

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}
