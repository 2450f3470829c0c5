package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-sha2/crypto/hash"
)

func TestNew(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := New(&buf, "INFO", FormatJSON)
		require.NoError(t, err)

		log.Debug().Msg("hidden")
		log.Info().Str("algo", "SHA2_256").Msg("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), `"algo":"SHA2_256"`)
		assert.Contains(t, buf.String(), `"level":"info"`)
	})

	t.Run("console", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := New(&buf, "debug", FormatConsole)
		require.NoError(t, err)

		log.Debug().Msg("details")
		assert.Contains(t, buf.String(), "details")
		assert.NotContains(t, buf.String(), "{")
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := New(&bytes.Buffer{}, "loud", FormatJSON)
		assert.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := New(&bytes.Buffer{}, "info", "xml")
		assert.Error(t, err)
	})
}

func TestDigests(t *testing.T) {
	abc := hash.Sum256([]byte("abc"))
	digests := Digests([]hash.Hash{abc[:], {0x01, 0xff}})
	assert.Equal(t, []string{"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", "01ff"}, digests)
	assert.Empty(t, Digests(nil))
}
