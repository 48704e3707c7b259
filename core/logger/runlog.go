package logger

import (
	"bytes"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RunLog is a zapcore.Core that captures every entry at or above its level
// into an in-memory buffer. It is teed next to the process core so a run's
// warnings and errors can be flushed to the operator in one message.
type RunLog struct {
	zapcore.LevelEnabler
	enc zapcore.Encoder
	buf *runBuffer
}

type runBuffer struct {
	mu    sync.Mutex
	data  bytes.Buffer
	lines int
}

// NewRunLog creates a RunLog capturing entries at level and above.
// An unparsable level falls back to info.
func NewRunLog(level string) *RunLog {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	encCfg.CallerKey = zapcore.OmitKey
	encCfg.StacktraceKey = zapcore.OmitKey

	return &RunLog{
		LevelEnabler: lvl,
		enc:          zapcore.NewConsoleEncoder(encCfg),
		buf:          &runBuffer{},
	}
}

// Attach returns a logger that writes to both l and the run log.
func (r *RunLog) Attach(l *zap.Logger) *zap.Logger {
	return l.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, r)
	}))
}

// With implements zapcore.Core.
func (r *RunLog) With(fields []zapcore.Field) zapcore.Core {
	enc := r.enc.Clone()
	for _, f := range fields {
		f.AddTo(enc)
	}
	return &RunLog{LevelEnabler: r.LevelEnabler, enc: enc, buf: r.buf}
}

// Check implements zapcore.Core.
func (r *RunLog) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if r.Enabled(ent.Level) {
		return ce.AddCore(ent, r)
	}
	return ce
}

// Write implements zapcore.Core.
func (r *RunLog) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	out, err := r.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	defer out.Free()

	r.buf.mu.Lock()
	r.buf.data.Write(out.Bytes())
	r.buf.lines++
	r.buf.mu.Unlock()
	return nil
}

// Sync implements zapcore.Core.
func (r *RunLog) Sync() error {
	return nil
}

// Len returns the number of captured entries.
func (r *RunLog) Len() int {
	r.buf.mu.Lock()
	defer r.buf.mu.Unlock()
	return r.buf.lines
}

// Drain returns the captured text and empties the buffer for the next run.
func (r *RunLog) Drain() string {
	r.buf.mu.Lock()
	defer r.buf.mu.Unlock()
	text := strings.TrimRight(r.buf.data.String(), "\n")
	r.buf.data.Reset()
	r.buf.lines = 0
	return text
}
