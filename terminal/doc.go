// Package terminal drives an xterm-compatible controlling terminal directly.
//
// It covers the four pieces a full-screen console needs before it can draw
// anything: entering and leaving raw mode, reading single keys with a
// bounded wait, discovering the window size (falling back to the
// cursor-position report when the ioctl is unavailable), and assembling a
// frame in memory so that a screen update reaches the terminal in one write.
//
// The package emits ANSI sequences itself and never consults terminfo.
package terminal
