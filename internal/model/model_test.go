package model

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/klauspost/compress/gzip"
	"github.com/projectdiscovery/langid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

const engCounts = "the 1000\ncat 50\n\nbroken\nzero 0\nnan x\nthe cat 7\n"

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.Nil(t, os.WriteFile(path, data, 0644))
	return path
}

func gzipped(t *testing.T, data string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(data))
	require.Nil(t, err)
	require.Nil(t, zw.Close())
	return buf.Bytes()
}

func classModel(t *testing.T, lang string, counts map[string]uint64) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.Nil(t, NewClassModel(lang, counts).Save(&buf))
	return buf.Bytes()
}

func TestParseCounts(t *testing.T) {
	got := map[string]float64{}
	err := ParseCounts(strings.NewReader(engCounts), func(token string, count float64) error {
		got[token] = count
		return nil
	})
	require.Nil(t, err)
	require.Equal(t, map[string]float64{"the": 1000, "cat": 50, "the cat": 7}, got)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "nld.freq", []byte("de 10\n"))
	writeFile(t, dir, "eng.freq.gz", gzipped(t, engCounts))
	writeFile(t, dir, "fra.model", classModel(t, "fra", map[string]uint64{"le": 10}))
	writeFile(t, dir, "README.md", []byte("not a model"))
	writeFile(t, dir, ".freq", []byte("x 1\n"))
	require.Nil(t, os.Mkdir(filepath.Join(dir, "deu.freq"), 0755))

	files, err := Discover(dir, nil)
	require.Nil(t, err)
	require.Len(t, files, 3)
	require.Equal(t, File{Lang: "eng", Path: filepath.Join(dir, "eng.freq.gz"), Format: FormatGzip}, files[0])
	require.Equal(t, "fra", files[1].Lang)
	require.Equal(t, FormatClass, files[1].Format)
	require.Equal(t, FormatText, files[2].Format)

	files, err = Discover(dir, []string{"nld"})
	require.Nil(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "nld", files[0].Lang)

	_, err = Discover(dir, []string{"ita"})
	require.Error(t, err)
	_, err = Discover(filepath.Join(dir, "missing"), nil)
	require.Error(t, err)
}

func TestClassModel(t *testing.T) {
	cm := NewClassModel("eng", map[string]uint64{"the": 1000, "cat": 50})
	class, ok := cm.Encode("cat")
	require.True(t, ok)
	require.Equal(t, uint32(1), class)

	_, isWriterTo := interface{}(cm).(io.WriterTo)
	require.False(t, isWriterTo, "Save does not follow the io.WriterTo contract")

	var buf bytes.Buffer
	require.Nil(t, cm.Save(&buf))
	decoded, err := ReadClassModel(&buf)
	require.Nil(t, err)
	require.Equal(t, cm, decoded)

	v, ok := decoded.Frequency("the")
	require.True(t, ok)
	require.Equal(t, 1000.0, v)
	_, ok = decoded.Frequency("dog")
	require.False(t, ok)
}

func TestLoadDirBackendsAgree(t *testing.T) {
	tokens := []string{"the", "cat", "dog"}
	var scores []float64
	for _, tc := range []struct {
		name string
		data []byte
		disk bool
	}{
		{"eng.freq", []byte(engCounts), false},
		{"eng.freq", []byte(engCounts), true},
		{"eng.freq.gz", gzipped(t, engCounts), false},
		{"eng.model", classModel(t, "eng", map[string]uint64{"the": 1000, "cat": 50}), false},
	} {
		dir := t.TempDir()
		writeFile(t, dir, tc.name, tc.data)
		set, err := LoadDir(dir, &Options{DiskTables: tc.disk})
		require.Nil(t, err, tc.name)
		require.Equal(t, []string{"eng"}, set.Languages())
		logProb, confidence := set.Models[0].Score(tokens)
		require.InDelta(t, 2.0/3.0, confidence, 1e-9, tc.name)
		scores = append(scores, logProb)
		set.Close()
	}
	for _, score := range scores[1:] {
		require.InDelta(t, scores[0], score, 1e-9)
	}
}

func TestLoadEmptyText(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "eng.freq", nil)
	set, err := LoadDir(dir, &Options{})
	require.Nil(t, err)
	defer set.Close()
	logProb, confidence := set.Models[0].Score([]string{"the"})
	require.Equal(t, langid.OOVScore, logProb)
	require.Zero(t, confidence)
}

func TestLoadDirInvalidModel(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "eng.freq.gz", []byte("not gzip"))
	_, err := LoadDir(dir, &Options{})
	require.Error(t, err)
}

func TestRedis(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()
	ctx := context.Background()

	require.Nil(t, Upload(ctx, client, "eng", map[string]float64{"the": 1000, "cat": 50}))
	require.Nil(t, Upload(ctx, client, "nld", nil))

	_, err := LoadRedis(ctx, client, &Options{})
	require.Error(t, err, "languages are required")
	_, err = LoadRedis(ctx, client, &Options{Langs: []string{"nld"}})
	require.Error(t, err, "no table for any language")

	set, err := LoadRedis(ctx, client, &Options{Langs: []string{"nld", "eng"}})
	require.Nil(t, err)
	require.Equal(t, []string{"eng"}, set.Languages())

	// same score as an in memory table with the same counts
	want, _ := langid.NewModel("eng", langid.MapTable{"the": 1000, "cat": 50}).Score([]string{"the", "cat", "dog"})
	got, confidence := set.Models[0].Score([]string{"the", "cat", "dog"})
	require.InDelta(t, want, got, 1e-9)
	require.InDelta(t, 2.0/3.0, confidence, 1e-9)
}

func TestReadCounts(t *testing.T) {
	dir := t.TempDir()
	want := map[string]float64{"the": 1000, "cat": 50, "the cat": 7}
	for _, file := range []File{
		{Lang: "eng", Path: writeFile(t, dir, "eng.freq", []byte(engCounts)), Format: FormatText},
		{Lang: "eng", Path: writeFile(t, dir, "eng.freq.gz", gzipped(t, engCounts)), Format: FormatGzip},
		{Lang: "eng", Path: writeFile(t, dir, "eng.model", classModel(t, "eng", map[string]uint64{"the": 1000, "cat": 50, "the cat": 7})), Format: FormatClass},
	} {
		counts, err := ReadCounts(file)
		require.Nil(t, err, file.Path)
		require.Equal(t, want, counts, file.Path)
	}
}

func TestUploadDir(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()
	ctx := context.Background()

	dir := t.TempDir()
	writeFile(t, dir, "eng.freq.gz", gzipped(t, engCounts))
	writeFile(t, dir, "fra.freq", []byte("le 1000\nchat 50\n"))
	writeFile(t, dir, "nld.freq", nil)

	langs, err := UploadDir(ctx, client, dir, &Options{})
	require.Nil(t, err)
	require.Equal(t, []string{"eng", "fra"}, langs)

	set, err := LoadRedis(ctx, client, &Options{Langs: []string{"eng", "fra"}})
	require.Nil(t, err)
	v, ok := set.Models[0].Table.Frequency("the cat")
	require.True(t, ok)
	require.Equal(t, 7.0, v)
	v, ok = set.Models[1].Table.Frequency("chat")
	require.True(t, ok)
	require.Equal(t, 50.0, v)
}

func TestUploadInBatches(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()
	ctx := context.Background()

	counts := make(map[string]float64, uploadBatch*2+5)
	for i := 0; i < uploadBatch*2+5; i++ {
		counts[fmt.Sprintf("token%d", i)] = float64(i + 1)
	}
	require.Nil(t, Upload(ctx, client, "eng", counts))
	size, err := NewRedisTable(client, "eng").Len(ctx)
	require.Nil(t, err)
	require.Equal(t, int64(len(counts)), size)
}
