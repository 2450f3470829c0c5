package util

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// progressLines returns the current value of every logged progress line.
func progressLines(t *testing.T, buf *bytes.Buffer) []uint64 {
	var values []uint64
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry struct {
			Current uint64 `json:"current"`
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, "hashing progress", entry.Message)
		values = append(values, entry.Current)
	}
	return values
}

func TestLogProgress(t *testing.T) {
	t.Run("every tick", func(t *testing.T) {
		var buf bytes.Buffer
		add := LogProgress(zerolog.New(&buf), DefaultLogProgressConfig("hashing", 100))
		for i := 0; i < 100; i++ {
			add(1)
		}
		assert.Equal(t, []uint64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}, progressLines(t, &buf))
	})

	t.Run("large additions log every tick crossed", func(t *testing.T) {
		var buf bytes.Buffer
		add := LogProgress(zerolog.New(&buf), DefaultLogProgressConfig("hashing", 100))
		add(35)
		add(0)
		add(65)
		assert.Equal(t, []uint64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}, progressLines(t, &buf))
	})

	t.Run("total not divisible by the ticks", func(t *testing.T) {
		var buf bytes.Buffer
		add := LogProgress(zerolog.New(&buf), DefaultLogProgressConfig("hashing", 25))
		for i := 0; i < 25; i++ {
			add(1)
		}
		values := progressLines(t, &buf)
		assert.Equal(t, uint64(0), values[0])
		assert.Equal(t, uint64(25), values[len(values)-1])
		assert.Len(t, values, 13)
	})

	t.Run("fewer units than ticks", func(t *testing.T) {
		var buf bytes.Buffer
		add := LogProgress(zerolog.New(&buf), DefaultLogProgressConfig("hashing", 3))
		add(1)
		add(1)
		add(1)
		assert.Equal(t, []uint64{0, 1, 2, 3}, progressLines(t, &buf))
	})

	t.Run("no data duration", func(t *testing.T) {
		var buf bytes.Buffer
		config := DefaultLogProgressConfig("hashing", 1000)
		config.NoDataLogDuration = time.Millisecond
		add := LogProgress(zerolog.New(&buf), config)
		time.Sleep(5 * time.Millisecond)
		add(1)
		assert.Equal(t, []uint64{0, 1}, progressLines(t, &buf))
	})

	t.Run("concurrent", func(t *testing.T) {
		var buf bytes.Buffer
		add := LogProgress(zerolog.New(&buf), DefaultLogProgressConfig("hashing", 1000))
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					add(1)
				}
			}()
		}
		wg.Wait()
		assert.Len(t, progressLines(t, &buf), 11)
	})
}
