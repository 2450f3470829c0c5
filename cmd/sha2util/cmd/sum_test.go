package cmd

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-sha2/crypto/hash"
	"github.com/onflow/flow-sha2/utils/unittest"
)

func TestSumStdin(t *testing.T) {
	stdout, _, err := execute(t, strings.NewReader("abc"), "sum")
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad  -\n", stdout)

	stdout, _, err = execute(t, strings.NewReader("hello\n"), "sum", "-a", "sha224", "--chunk-size", "1")
	require.NoError(t, err)
	assert.Equal(t, "2d6d67d91d0badcdd06cbbba1fe11538a68a37ec9c2e26457ceff12b  -\n", stdout)
}

func TestSumFiles(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		contents := [][]byte{
			{},
			[]byte("abc"),
			unittest.PatternBytes(1000),
			unittest.RandomBytes(hash.BlockSize*10 + 3),
		}
		var (
			args     []string
			expected strings.Builder
		)
		for i, content := range contents {
			path := unittest.WriteTempFile(t, dir, fmt.Sprintf("file-%d", i), content)
			args = append(args, path)
			digest := sha256.Sum224(content)
			expected.WriteString(hex.EncodeToString(digest[:]) + "  " + path + "\n")
		}

		for _, workers := range []string{"1", "3"} {
			for _, chunkSize := range []string{"1", "35", "4096"} {
				cmdArgs := append([]string{"sum", "--algo", "SHA2_224", "--workers", workers, "--chunk-size", chunkSize}, args...)
				stdout, _, err := execute(t, nil, cmdArgs...)
				require.NoError(t, err)
				// output follows the argument order whatever the workers
				assert.Equal(t, expected.String(), stdout, "workers %s, chunk size %s", workers, chunkSize)
			}
		}
	})
}

func TestSumAlgorithmFromEnvironment(t *testing.T) {
	t.Setenv("SHA2_ALGO", "sha224")
	stdout, _, err := execute(t, strings.NewReader("abc"), "sum")
	require.NoError(t, err)
	assert.Equal(t, "23097d223405d8228642a477bda255b32aadbce4bda0b3f7e36c9da7  -\n", stdout)

	// the flag wins over the environment
	stdout, _, err = execute(t, strings.NewReader("abc"), "sum", "--algo", "sha256")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "ba7816bf"))
}

func TestSumErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		unittest.RunWithTempDir(t, func(dir string) {
			path := unittest.WriteTempFile(t, dir, "present", []byte("abc"))
			missing := filepath.Join(dir, "missing")

			stdout, _, err := execute(t, nil, "sum", missing, path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), missing)
			// the other files are still hashed
			assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad  "+path+"\n", stdout)
		})
	})

	t.Run("directory", func(t *testing.T) {
		unittest.RunWithTempDir(t, func(dir string) {
			_, _, err := execute(t, nil, "sum", dir)
			assert.Error(t, err)
		})
	})

	t.Run("invalid flags", func(t *testing.T) {
		_, _, err := execute(t, nil, "sum", "--algo", "md5")
		assert.Error(t, err)

		_, _, err = execute(t, nil, "sum", "--chunk-size", "0")
		assert.Error(t, err)

		_, _, err = execute(t, nil, "sum", "--workers", "0")
		assert.Error(t, err)
	})
}

func TestAlgorithmValue(t *testing.T) {
	value := newAlgorithmValue(hash.SHA2_256)
	assert.Equal(t, "sha256", value.String())
	assert.Equal(t, "algorithm", value.Type())

	require.NoError(t, value.Set("sha-224"))
	assert.Equal(t, hash.SHA2_224, value.algo)
	assert.Equal(t, "sha224", value.String())

	err := value.Set("sha3")
	assert.True(t, hash.IsInvalidAlgorithmError(err))
	// unchanged on error
	assert.Equal(t, hash.SHA2_224, value.algo)
}
