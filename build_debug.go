//go:build !release

package vktriangle

const debugBuild = true
