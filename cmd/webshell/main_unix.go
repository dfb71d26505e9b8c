//go:build linux || darwin

package main

import (
	"context"
	"runtime/debug"
	"strconv"

	"golang.org/x/sys/unix"

	"github.com/bnema/webshell/internal/logging"
)

// coreLimit is RLIMIT_CORE as left by enableCrashForensics.
var coreLimit struct {
	soft, hard uint64
	raised     bool
	err        error
}

// enableCrashForensics makes a crash inside WebKit or GTK print every
// goroutine and leave a core dump. It runs before the logger exists, so
// the outcome is recorded for logCoreDumpLimits.
func enableCrashForensics() {
	debug.SetTraceback("crash")

	var rl unix.Rlimit
	if coreLimit.err = unix.Getrlimit(unix.RLIMIT_CORE, &rl); coreLimit.err != nil {
		return
	}
	if rl.Cur < rl.Max {
		cur := rl.Cur
		rl.Cur = rl.Max
		if err := unix.Setrlimit(unix.RLIMIT_CORE, &rl); err != nil {
			rl.Cur = cur
		} else {
			coreLimit.raised = true
		}
	}
	coreLimit.soft, coreLimit.hard = rl.Cur, rl.Max
}

func logCoreDumpLimits(ctx context.Context) {
	log := logging.FromContext(ctx)
	if coreLimit.err != nil {
		log.Debug().Err(coreLimit.err).Msg("core dump limit unavailable")
		return
	}
	log.Debug().
		Str("soft", formatRlimit(coreLimit.soft)).
		Str("hard", formatRlimit(coreLimit.hard)).
		Bool("raised", coreLimit.raised).
		Msg("core dump limits")
}

func formatRlimit(v uint64) string {
	if v == unix.RLIM_INFINITY {
		return "infinity"
	}
	return strconv.FormatUint(v, 10)
}
