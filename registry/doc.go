// Package registry provides host application registries for the
// directory package: a fixed list, a YAML manifest file, and a scanner for
// freedesktop.org .desktop entries.
package registry
