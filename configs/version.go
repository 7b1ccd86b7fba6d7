// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package configs

import "time"

// Set at build time.
var (
	version   = "dev"
	buildTime = ""
)

// Version returns the build version.
func Version() string {
	return version
}

// BuildTime returns the build date, zero when unknown.
func BuildTime() time.Time {
	t, err := time.Parse(time.RFC3339, buildTime)
	if err != nil {
		return time.Time{}
	}
	return t
}
