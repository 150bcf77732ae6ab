package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Release builds stamp these with -ldflags "-X main.Version=v1.2.0 ...".
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

// writeVersion writes one line: name, version, platform and whatever
// build stamps are set.
func writeVersion(w io.Writer) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "lgcname %s %s/%s", Version, runtime.GOOS, runtime.GOARCH)
	if Commit != "" {
		fmt.Fprintf(&sb, " commit=%s", Commit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&sb, " built=%s", BuildDate)
	}
	sb.WriteByte('\n')
	io.WriteString(w, sb.String())
}
