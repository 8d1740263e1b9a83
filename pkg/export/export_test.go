package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_Memory(t *testing.T) {
	ctx := context.Background()
	w := New()
	location := "mem://localhost/shelter/Schedule.txt"

	target, err := w.Write(ctx, location, "Hour: 0\nEmpty\n\n")
	require.NoError(t, err)
	assert.Equal(t, location, target)

	_, err = w.Write(ctx, location, "Hour: 0\nSly\n\n")
	require.NoError(t, err)

	data, err := w.fs.DownloadWithURL(ctx, location)
	require.NoError(t, err)
	assert.Equal(t, "Hour: 0\nSly\n\n", string(data))
}

func TestWrite_LocalPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Schedule.txt")

	target, err := New().Write(context.Background(), path, "Hour: 0\nEmpty\n\n")
	require.NoError(t, err)
	assert.Equal(t, path, target)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Hour: 0\nEmpty\n\n", string(data))
}

func TestResolve(t *testing.T) {
	got, err := Resolve("Schedule.txt")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "Schedule.txt", filepath.Base(got))

	got, err = Resolve("s3://bucket/Schedule.txt")
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/Schedule.txt", got)
}
