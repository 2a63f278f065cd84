package observability

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInit_SetsLevelAndOutput(t *testing.T) {
	var buf bytes.Buffer
	Init("debug", &buf)
	t.Cleanup(func() { Init("info", nil) })

	Log.WithField("category", "bias").Debug("projected card")

	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
	assert.Contains(t, buf.String(), "projected card")
	assert.Contains(t, buf.String(), "category=bias")
}

func TestInit_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Init("chatty", &buf)
	t.Cleanup(func() { Init("info", nil) })

	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}

func TestDiscard_WritesNothing(t *testing.T) {
	l := Discard()
	l.Error("dropped")
	assert.Equal(t, logrus.PanicLevel, l.GetLevel())
}
