// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package main

import "github.com/alumnify/tenant-isolation/cmd"

func main() {
	cmd.Execute()
}
