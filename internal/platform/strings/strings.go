// Package strings holds the string assertions modules use for their names and mount points
package strings

import std "strings"

// MustString returns s unless it is blank, in which case it panics naming what was missing
func MustString(s, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes a mount point to one leading slash and no trailing slash
// "labels/" becomes "/labels"; a blank or bare "/" panics since modules never mount at root through a prefix
func MustPrefix(s string) string {
	p := "/" + std.Trim(std.TrimSpace(s), "/")
	if p == "/" {
		panic("module prefix is required")
	}
	return p
}
