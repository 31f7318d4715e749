// Package cli implements the filetugctl command line: inspecting and changing
// settings, managing bookmarks and maintaining thumbnail caches without the
// desktop application.
package cli
