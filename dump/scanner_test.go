package dump

import (
	"context"
	"math"
	"math/rand"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YLivay/hexi/document"
)

var testData = []byte{
	0x31, 0x32, 0x33, 0x34, 0x35, 0x36, 0x37, 0x38,
	0x61, 0x62, 0x63, 0x64, 0x65, 0x66, 0x67, 0x68,
}

func newTestDocument(t testing.TB, data []byte, sectionLength, sectionsPerLine, chunkSize int) *document.Document {
	doc, err := document.New("test", data, document.Layout{
		SectionLength:   sectionLength,
		SectionsPerLine: sectionsPerLine,
		ChunkSize:       chunkSize,
	})
	require.NoError(t, err)
	return doc
}

func collect(s interface {
	Scan() bool
	Text() string
}) []string {
	lines := []string{}
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	return lines
}

func TestScanner_SingleLine(t *testing.T) {
	doc := newTestDocument(t, testData, 8, 2, 1)

	assert.Equal(t, []string{"0000| 31 32 33 34 35 36 37 38   61 62 63 64 65 66 67 68"}, collect(NewScanner(doc)))
}

func TestScanner_ManyLines(t *testing.T) {
	doc := newTestDocument(t, testData, 2, 2, 2)

	assert.Equal(t, []string{
		"0000| 3132   3334",
		"0004| 3536   3738",
		"0008| 6162   6364",
		"000C| 6566   6768",
	}, collect(NewScanner(doc)))
}

func TestScanner_ShortTailIsNotPadded(t *testing.T) {
	doc := newTestDocument(t, []byte{0xff}, 8, 1, 1)

	assert.Equal(t, []string{"0000| FF"}, collect(NewScanner(doc)))
}

func TestScanner_EmptyDocument(t *testing.T) {
	doc := newTestDocument(t, nil, 8, 2, 1)

	s := NewScanner(doc)
	assert.False(t, s.Scan())
	assert.NoError(t, s.Err())
	assert.False(t, s.Scan())
}

func TestScanner_Accessors(t *testing.T) {
	doc := newTestDocument(t, testData, 2, 2, 2)

	s := NewScanner(doc)
	require.True(t, s.Scan())
	require.True(t, s.Scan())
	assert.Equal(t, 1, s.Line())
	assert.Equal(t, 4, s.Offset())
	assert.Equal(t, "3536   3738", s.Hex())
	assert.Equal(t, "0004| 3536   3738", s.Text())
}

func TestScanner_WideOffsets(t *testing.T) {
	doc := newTestDocument(t, make([]byte, 0x10001), 8, 2, 1)

	var last string
	s := NewScanner(doc)
	for s.Scan() {
		last = s.Text()
	}
	assert.Equal(t, "10000| 00", last)
}

func TestLines_IsRestartable(t *testing.T) {
	doc := newTestDocument(t, testData, 2, 2, 2)
	seq := Lines(doc)

	var first, second []string
	for line := range seq {
		first = append(first, line)
	}
	for line := range seq {
		second = append(second, line)
	}

	assert.Len(t, first, 4)
	assert.Equal(t, first, second)
}

func TestLines_StopsEarly(t *testing.T) {
	doc := newTestDocument(t, testData, 2, 2, 2)

	var got []string
	for line := range Lines(doc) {
		got = append(got, line)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"0000| 3132   3334", "0004| 3536   3738"}, got)
}

func TestLines_FromFile(t *testing.T) {
	filepath := path.Join(t.TempDir(), "test.data")
	require.NoError(t, os.WriteFile(filepath, testData, 0644))

	doc, err := document.Open(document.Config{File: filepath, Layout: document.DefaultLayout()})
	require.NoError(t, err)
	defer doc.Close()

	var got []string
	for line := range Lines(doc) {
		got = append(got, line)
	}
	assert.Equal(t, []string{"0000| 31 32 33 34 35 36 37 38   61 62 63 64 65 66 67 68"}, got)
}

func TestParallelScanner_MatchesScanner(t *testing.T) {
	data := make([]byte, 5000)
	rand.New(rand.NewSource(3)).Read(data)
	doc := newTestDocument(t, data, 3, 3, 2)
	want := collect(NewScanner(doc))

	for _, tc := range []struct{ workers, batch int }{
		{1, 1}, {2, 7}, {4, 64}, {8, 1000}, {0, 0},
	} {
		s := NewParallelScanner(context.Background(), doc, tc.workers, tc.batch)
		got := collect(s)
		assert.NoError(t, s.Err())
		assert.NoError(t, s.Close())
		assert.Equal(t, want, got, "workers=%d batch=%d", tc.workers, tc.batch)
	}
}

func TestParallelScanner_Accessors(t *testing.T) {
	doc := newTestDocument(t, testData, 2, 2, 2)

	s := NewParallelScanner(context.Background(), doc, 2, 1)
	defer s.Close()

	require.True(t, s.Scan())
	require.True(t, s.Scan())
	assert.Equal(t, 1, s.Line())
	assert.Equal(t, 4, s.Offset())
	assert.Equal(t, "3536   3738", s.Hex())
}

func TestParallelScanner_AccessorsOutsideScan(t *testing.T) {
	doc := newTestDocument(t, testData, 8, 2, 1)

	s := NewParallelScanner(context.Background(), doc, 2, 1)
	defer s.Close()

	assert.Equal(t, 0, s.Offset())
	assert.Empty(t, s.Hex())
	assert.Empty(t, s.Text())

	require.True(t, s.Scan())
	require.False(t, s.Scan())
	assert.Equal(t, 0, s.Offset())
	assert.Empty(t, s.Hex())
	assert.Empty(t, s.Text())
}

func TestParallelScanner_HugeBatch(t *testing.T) {
	doc := newTestDocument(t, make([]byte, 100), 2, 2, 1)

	s := NewParallelScanner(context.Background(), doc, 2, math.MaxInt)
	defer s.Close()

	lines := 0
	for s.Scan() {
		lines++
	}
	assert.NoError(t, s.Err())
	assert.Equal(t, doc.LineCount(), lines)
}

func TestParallelScanner_EmptyDocument(t *testing.T) {
	doc := newTestDocument(t, nil, 8, 2, 1)

	s := NewParallelScanner(context.Background(), doc, 4, 16)
	assert.False(t, s.Scan())
	assert.NoError(t, s.Err())
	assert.NoError(t, s.Close())
}

func TestParallelScanner_Cancel(t *testing.T) {
	doc := newTestDocument(t, make([]byte, 1<<16), 8, 2, 1)
	ctx, cancel := context.WithCancel(context.Background())

	s := NewParallelScanner(ctx, doc, 2, 4)
	defer s.Close()

	require.True(t, s.Scan())
	cancel()

	lines := 1
	for s.Scan() {
		lines++
	}
	assert.ErrorIs(t, s.Err(), context.Canceled)
	assert.Less(t, lines, doc.LineCount())
}

func TestParallelScanner_CloseEarlyIsNotAnError(t *testing.T) {
	doc := newTestDocument(t, make([]byte, 1<<16), 8, 2, 1)

	s := NewParallelScanner(context.Background(), doc, 2, 4)
	require.True(t, s.Scan())
	assert.NoError(t, s.Close())
	assert.False(t, s.Scan())
	assert.NoError(t, s.Err())
}

func BenchmarkScanner(b *testing.B) {
	data := make([]byte, 1<<20)
	rand.New(rand.NewSource(1)).Read(data)
	doc := newTestDocument(b, data, 8, 2, 1)

	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		s := NewScanner(doc)
		for s.Scan() {
			_ = s.Text()
		}
	}
}

func BenchmarkParallelScanner(b *testing.B) {
	data := make([]byte, 1<<20)
	rand.New(rand.NewSource(1)).Read(data)
	doc := newTestDocument(b, data, 8, 2, 1)

	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		s := NewParallelScanner(context.Background(), doc, 0, 0)
		for s.Scan() {
			_ = s.Text()
		}
		s.Close()
	}
}
