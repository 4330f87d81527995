//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const serverBin = "./bin/chessleague"

func goModDownload() error {
	return sh.Run("go", "mod", "download")
}

// Build builds the chessleague binary
func Build() error {
	mg.Deps(goModDownload)
	return sh.Run("go", "build", "-o", serverBin, "cmd/main.go")
}

// Run computes the ratings and prints the tables
func Run() error {
	mg.Deps(Build)
	return sh.Run(serverBin)
}

// Serve starts the web ui
func Serve() error {
	mg.Deps(Build)
	return sh.Run(serverBin, "-serve")
}

// Test runs all tests
func Test() error {
	return sh.Run("go", "test", "./...")
}
