//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// Default target to run when none is specified
// If not set, running mage will list available targets
var Default = Build

// A build step that requires additional params, or platform specific steps for example
func Build() error {
	mg.Deps(BuildSummarizer)
	mg.Deps(BuildGroupCompare)
	fmt.Println("Compilation finished")
	return nil
}

func BuildSummarizer() error {
	fmt.Println("Building summarizer executable...")
	cmd := goCmd("build", "-o", "./bin/nt-summary-stats", ".")
	return cmd.Run()
}

func BuildGroupCompare() error {
	fmt.Println("Building groupcompare executable...")
	cmd := goCmd("build", "-o", "./bin/groupcompare", "./groupcompare")
	return cmd.Run()
}

func Test() error {
	fmt.Println("Running tests...")
	cmd := goCmd("test", "./...")
	return cmd.Run()
}

// The HDF5 binding needs cgo with the library paths from the environment.
func goCmd(args ...string) *exec.Cmd {
	ldflags := os.Getenv("CGO_LDFLAGS")
	cflags := os.Getenv("CGO_CFLAGS")
	cmd := exec.Command("go", args...)
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("CGO_ENABLED=1"),
		fmt.Sprintf("CGO_LDFLAGS=%s", ldflags),
		fmt.Sprintf("CGO_CFLAGS=%s", cflags))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}
