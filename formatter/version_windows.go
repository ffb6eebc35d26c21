//go:build windows

package formatter

import "golang.org/x/sys/windows"

// windowsMajorVersion reports the running Windows major version
func windowsMajorVersion() uint32 {
	return windows.RtlGetVersion().MajorVersion
}
