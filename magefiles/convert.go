//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds the CLI and converts the example scene in Scenes/, recording
// the attempt in the local history.
func Convert() error {
	mg.Deps(Init, Build)
	return sh.RunV(binPath, "convert", "--record")
}
