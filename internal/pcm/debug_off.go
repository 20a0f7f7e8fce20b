//go:build !pcmdebug

package pcm

const debugChecks = false
