package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantLevel logrus.Level
	}{
		{name: "debug level", level: "debug", wantLevel: logrus.DebugLevel},
		{name: "info level", level: "info", wantLevel: logrus.InfoLevel},
		{name: "unknown level falls back to info", level: "chatty", wantLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			InitLogger(tt.level, true)
			require.NotNil(t, GetLogger())
			assert.Equal(t, tt.wantLevel, GetLogger().GetLevel())
		})
	}
}

func TestFieldsAreMerged(t *testing.T) {
	InitLogger("debug", true)
	var buf bytes.Buffer
	GetLogger().SetOutput(&buf)

	Info("resolved collection", Fields{"collection": "c1"}, Fields{"types": "source_imagery"})

	out := buf.String()
	assert.Contains(t, out, "resolved collection")
	assert.Contains(t, out, "collection=c1")
	assert.Contains(t, out, "types=source_imagery")
}
