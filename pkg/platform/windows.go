// SPDX-License-Identifier: MPL-2.0

package platform

import "strings"

// WindowsReservedNames lists file names that Windows reserves for devices.
// Files with these names (with or without an extension) cannot be created
// on Windows filesystems.
var WindowsReservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// IsWindowsReservedName reports whether name collides with a Windows device
// name. The check is case-insensitive and ignores any extension, matching
// how Windows treats e.g. "con.txt" the same as "con".
func IsWindowsReservedName(name string) bool {
	stem, _, _ := strings.Cut(name, ".")
	return WindowsReservedNames[strings.ToUpper(stem)]
}
