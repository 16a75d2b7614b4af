package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/you-not-fish/gum/internal/driver"
)

// minGo is the oldest Go release gumc is supported with.
const minGo = ">= 1.21"

// runDoctor checks the toolchain and returns an exit code.
func runDoctor() int {
	fmt.Println("gum Toolchain Doctor")
	fmt.Println("====================")
	fmt.Println()

	allOk := true

	goVersion := runtime.Version()
	fmt.Printf("Go:      %s", goVersion)
	if checkGoVersion(goVersion) {
		fmt.Println(" ✓")
	} else {
		fmt.Printf(" ✗ (need %s)\n", minGo)
		allOk = false
	}

	cc := compiler()
	ccVersion, ccOk := checkTool(cc, "--version")
	fmt.Printf("%-8s %s", cc+":", ccVersion)
	if ccOk {
		fmt.Println(" ✓")
	} else {
		fmt.Println(" ✗ (not found)")
		allOk = false
	}

	tc, err := driver.Load(config())
	if err != nil {
		fmt.Printf("runtime: ✗ (%v)\n", err)
		allOk = false
	} else {
		fmt.Printf("runtime: %s %s ✓\n", tc.Header, tc.Version)
		fmt.Printf("table:   %s (runtime %s) ✓\n", tc.Table.Version, tc.Table.Runtime)
	}

	fmt.Println()
	if allOk {
		fmt.Println("All required tools available!")
		return 0
	}

	fmt.Println("Some required tools are missing.")
	return 1
}

// compiler returns the C compiler named by $CC, or cc.
func compiler() string {
	if cc := strings.TrimSpace(os.Getenv("CC")); cc != "" {
		return cc
	}
	return "cc"
}

// checkGoVersion reports whether a runtime.Version string satisfies minGo.
// Development builds pass.
func checkGoVersion(v string) bool {
	if !strings.HasPrefix(v, "go") {
		return strings.HasPrefix(v, "devel")
	}
	fields := strings.Fields(strings.TrimPrefix(v, "go"))
	if len(fields) == 0 {
		return false
	}
	ver, err := semver.NewVersion(fields[0])
	if err != nil {
		return false
	}
	c, err := semver.NewConstraint(minGo)
	if err != nil {
		return false
	}
	return c.Check(ver)
}

// checkTool runs a tool with the given arguments and returns the first line of output.
func checkTool(name string, args ...string) (string, bool) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return "", false
	}
	line, _, _ := strings.Cut(string(out), "\n")
	line = strings.TrimSpace(line)
	if len(line) > 60 {
		line = line[:57] + "..."
	}
	return line, true
}
