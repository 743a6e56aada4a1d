package lp

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/deploymenttheory/go-lpmetadata/internal/editor"
)

// DescribePartitions renders a human-readable table of every partition in
// e: name and size. This mirrors the teacher's
// pkg/app/discover/formatter.go, which turns structured results into
// operator-facing text rather than leaving callers to format raw structs.
func DescribePartitions(e *editor.Editor) string {
	var b strings.Builder
	for _, name := range e.PartitionNames() {
		size, err := e.PartitionSizeBytes(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "%-24s %10s\n", name, humanize.IBytes(size))
	}
	return b.String()
}

// DescribeGroupUsage renders "name  used / cap" for every group in e,
// "unbounded" standing in for a zero cap.
func DescribeGroupUsage(e *editor.Editor) string {
	var b strings.Builder
	for _, name := range e.GroupNames() {
		used := e.GroupUsageBytes(name)
		capBytes, _ := e.GroupMaxSize(name)
		capStr := "unbounded"
		if capBytes > 0 {
			capStr = humanize.IBytes(capBytes)
		}
		fmt.Fprintf(&b, "%-24s %10s / %s\n", name, humanize.IBytes(used), capStr)
	}
	return b.String()
}
