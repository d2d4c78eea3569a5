package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("chatty"))
	assert.Equal(t, zerolog.Disabled, ParseLevel("disabled"))
}

func TestSetupWritesComponent(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var buf bytes.Buffer
	Setup("info", &buf)

	log := For("physics")
	log.Debug().Msg("hidden")
	log.Info().Int("triangles", 12).Msg("world built")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "world built")
	assert.Contains(t, out, "component=physics")
	assert.Contains(t, out, "triangles=12")
}

func TestSetupCopiesToExtraWriters(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var console, sink bytes.Buffer
	Setup("debug", &console, &sink)

	log := For("bake")
	log.Info().Str("out", "rig.bake").Msg("wrote bundle")

	assert.Contains(t, console.String(), "wrote bundle")
	assert.Contains(t, sink.String(), `"component":"bake"`)
	assert.Contains(t, sink.String(), `"out":"rig.bake"`)
}

func TestGraylogWriterRejectsBadAddress(t *testing.T) {
	_, err := GraylogWriter("no-port")
	assert.Error(t, err)
}

func TestSetupWithGraylog(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var buf bytes.Buffer
	assert.NoError(t, SetupWithGraylog("info", "", &buf))

	// A bad address still leaves console logging in place.
	assert.Error(t, SetupWithGraylog("info", "no-port", &buf))
	log := For("test")
	log.Info().Msg("still here")
	assert.Contains(t, buf.String(), "still here")
}
