package buildinfo

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortPrefersVersion(t *testing.T) {
	v, c := Version, Commit
	t.Cleanup(func() { Version, Commit = v, c })

	Version, Commit = "dev", "unknown"
	assert.Equal(t, "dev", Short())

	Commit = "abc123"
	assert.Equal(t, "abc123", Short())

	Version = "v1.2.0"
	assert.Equal(t, "v1.2.0", Short())
}

func TestAttrsGroup(t *testing.T) {
	var buf bytes.Buffer
	slog.New(slog.NewTextHandler(&buf, nil)).With(Attrs()...).Info("hi")
	assert.Contains(t, buf.String(), "build.version=")
	assert.Contains(t, buf.String(), "build.commit=")
}
