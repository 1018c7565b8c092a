package logging

import (
	"context"
	"sync/atomic"
)

// MirrorFunc receives every record emitted through this package so logs can
// be fanned out to a second sink alongside stdout.
type MirrorFunc func(ctx context.Context, level Level, msg string, args ...any)

var mirror atomic.Pointer[MirrorFunc]

// SetMirror installs fn as the global log mirror. Passing nil removes the
// current mirror.
func SetMirror(fn MirrorFunc) {
	if fn == nil {
		mirror.Store(nil)
		return
	}
	mirror.Store(&fn)
}

func mirrorRecord(ctx context.Context, level Level, msg string, args []any) {
	ptr := mirror.Load()
	if ptr == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	(*ptr)(ctx, level, msg, args...)
}
