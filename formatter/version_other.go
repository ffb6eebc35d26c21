//go:build !windows

package formatter

func windowsMajorVersion() uint32 { return 0 }
