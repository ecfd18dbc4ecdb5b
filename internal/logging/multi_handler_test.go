package logging

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// recordingSink captures records and optionally fails every Handle call.
type recordingSink struct {
	level    slog.Level
	messages []string
	fail     error
}

func (s *recordingSink) Enabled(_ context.Context, level slog.Level) bool {
	return level >= s.level
}

func (s *recordingSink) Handle(_ context.Context, record slog.Record) error {
	s.messages = append(s.messages, record.Message)
	return s.fail
}

func (s *recordingSink) WithAttrs([]slog.Attr) slog.Handler { return s }
func (s *recordingSink) WithGroup(string) slog.Handler      { return s }

func record(level slog.Level, msg string) slog.Record {
	return slog.NewRecord(time.Now(), level, msg, 0)
}

func TestMultiHandlerFansOutByLevel(t *testing.T) {
	stdout := &recordingSink{level: slog.LevelInfo}
	pg := &recordingSink{level: slog.LevelError}
	m := NewMultiHandler(stdout, pg)

	assert.NoError(t, m.Handle(context.Background(), record(slog.LevelInfo, "request served")))
	assert.NoError(t, m.Handle(context.Background(), record(slog.LevelError, "store down")))

	assert.Equal(t, []string{"request served", "store down"}, stdout.messages)
	assert.Equal(t, []string{"store down"}, pg.messages)
}

func TestMultiHandlerFailingSinkDoesNotBlockOthers(t *testing.T) {
	broken := &recordingSink{level: slog.LevelInfo, fail: errors.New("sink unavailable")}
	healthy := &recordingSink{level: slog.LevelInfo}
	m := NewMultiHandler(broken, healthy)

	err := m.Handle(context.Background(), record(slog.LevelInfo, "still delivered"))
	assert.Error(t, err)
	assert.Equal(t, []string{"still delivered"}, healthy.messages)
}

func TestMultiHandlerEnabled(t *testing.T) {
	m := NewMultiHandler(&recordingSink{level: slog.LevelError})
	assert.False(t, m.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, m.Enabled(context.Background(), slog.LevelError))
}
