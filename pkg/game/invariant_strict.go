//go:build !release

package game

const strictInvariants = true
