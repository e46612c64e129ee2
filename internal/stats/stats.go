// Package stats implements the --stats CLI reporting SPEC_FULL.md's
// DOMAIN STACK section adds: wall-clock elapsed time, user/system CPU
// time, and statement-execution count for one run. Grounded directly on
// the donor's getCPUInfo/formatCPUTime/Sysconf(SC_CLK_TCK) in utils.go
// (lines 770-822) reading /proc/self/stat; adapted from the donor's
// print-directly-to-stdout style into a Report value cmd/basic formats.
package stats

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tklauser/go-sysconf"
)

// Collector snapshots CPU time at construction so a later Snapshot call can
// subtract the baseline, mirroring the donor's Session.elapsed/utime/stime
// fields captured when a BASIC session starts.
type Collector struct {
	started            time.Time
	baseUser, baseSys  int64
}

// NewCollector starts timing a run.
func NewCollector() *Collector {
	u, s := cpuTicks()
	return &Collector{started: time.Now(), baseUser: u, baseSys: s}
}

// Report is the point-in-time statistics a run is summarized by.
type Report struct {
	Elapsed    time.Duration
	UserTime   time.Duration
	SystemTime time.Duration
	Statements int
}

// Snapshot computes a Report as of now, given the number of statements
// the engine has executed so far.
func (c *Collector) Snapshot(statements int) Report {
	u, s := cpuTicks()
	return Report{
		Elapsed:    time.Since(c.started),
		UserTime:   time.Duration(u-c.baseUser) * time.Second,
		SystemTime: time.Duration(s-c.baseSys) * time.Second,
		Statements: statements,
	}
}

// String formats a Report the way the donor's formatCPUTime rendered
// its own CPU usage line, but via fmt.Stringer instead of a direct print,
// so cmd/basic controls where it's written.
func (r Report) String() string {
	return fmt.Sprintf("elapsed=%s user=%s system=%s statements=%d",
		r.Elapsed.Round(time.Millisecond), r.UserTime, r.SystemTime, r.Statements)
}

// cpuTicks reads /proc/self/stat's utime/stime fields (14th and 15th,
// 1-indexed) and converts them from clock ticks to seconds using
// SC_CLK_TCK, exactly as the donor's getCPUInfo does. On platforms
// without /proc (non-Linux), it degrades to zero rather than panicking —
// the donor assumes Linux unconditionally, but --stats is an added,
// optional flag here, not core interpreter behavior.
func cpuTicks() (userSeconds, sysSeconds int64) {
	clktck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil || clktck == 0 {
		return 0, 0
	}
	contents, err := os.ReadFile("/proc/self/stat")
	if err != nil {
		return 0, 0
	}
	fields := strings.Fields(string(contents))
	if len(fields) < 15 {
		return 0, 0
	}
	utime, err1 := strconv.ParseInt(fields[13], 10, 64)
	stime, err2 := strconv.ParseInt(fields[14], 10, 64)
	if err1 != nil || err2 != nil {
		return 0, 0
	}
	return utime / clktck, stime / clktck
}
