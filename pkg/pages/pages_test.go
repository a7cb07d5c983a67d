package pages

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	markuperrors "github.com/courseforge/markup/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestCleanName(t *testing.T) {
	valid := map[string]string{
		"index":           "index",
		"guides/setup":    "guides/setup",
		"guides/../index": "index",
		"a//b":            "a/b",
	}
	for in, want := range valid {
		got, err := CleanName(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, in := range []string{"", "/etc/passwd", "..", "../secret", "a/../../b", ".", `a\b`, "a\x00"} {
		_, err := CleanName(in)
		assert.True(t, errors.Is(err, markuperrors.New(markuperrors.CodeInvalidPage)), "name %q: %v", in, err)
	}
}

func TestDirStore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.yaml"), "[h1, Home]")
	writeFile(t, filepath.Join(dir, "about.json"), `["h1", "About"]`)
	writeFile(t, filepath.Join(dir, "guides", "setup.yml"), "[h1, Setup]")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(dir, "both.yaml"), "[p, yaml]")
	writeFile(t, filepath.Join(dir, "both.json"), `["p", "json"]`)

	store, err := NewDirStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	data, err := store.Get(ctx, "index")
	require.NoError(t, err)
	assert.Equal(t, "[h1, Home]", string(data))

	data, err = store.Get(ctx, "guides/setup")
	require.NoError(t, err)
	assert.Equal(t, "[h1, Setup]", string(data))

	data, err = store.Get(ctx, "both")
	require.NoError(t, err)
	assert.Equal(t, "[p, yaml]", string(data))

	_, err = store.Get(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = store.Get(ctx, "../outside")
	assert.True(t, errors.Is(err, markuperrors.New(markuperrors.CodeInvalidPage)))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"about", "both", "guides/setup", "index"}, names)
}

func TestNewDirStoreMissing(t *testing.T) {
	_, err := NewDirStore(filepath.Join(t.TempDir(), "nope"))
	assert.True(t, errors.Is(err, markuperrors.New(markuperrors.CodeStoreFailure)))
}

func TestDirStoreCancelled(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Get(ctx, "index")
	assert.ErrorIs(t, err, context.Canceled)
}

type fakeS3 struct {
	objects  map[string]string
	pageSize int
	getErr   error
	gets     []string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Key)
	f.gets = append(f.gets, key)
	if f.getErr != nil {
		return nil, f.getErr
	}
	body, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader([]byte(body)))}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	start := 0
	if in.ContinuationToken != nil {
		for i, k := range keys {
			if k == *in.ContinuationToken {
				start = i
			}
		}
	}
	end := len(keys)
	if f.pageSize > 0 && start+f.pageSize < end {
		end = start + f.pageSize
	}

	out := &s3.ListObjectsV2Output{}
	for _, k := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	if end < len(keys) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(keys[end])
	}
	return out, nil
}

func TestS3Store(t *testing.T) {
	fake := &fakeS3{
		objects: map[string]string{
			"site/index.yaml":       "[h1, Home]",
			"site/about.json":       `["h1", "About"]`,
			"site/guides/setup.yml": "[h1, Setup]",
			"site/readme.md":        "ignored",
			"other/hidden.yaml":     "[p, no]",
			"site/nested/deep.yaml": "[p, deep]",
		},
		pageSize: 2,
	}
	store := NewS3Store(fake, "bucket", "site/")
	ctx := context.Background()

	data, err := store.Get(ctx, "about")
	require.NoError(t, err)
	assert.Equal(t, `["h1", "About"]`, string(data))
	assert.Equal(t, []string{"site/about.yaml", "site/about.yml", "site/about.json"}, fake.gets)

	_, err = store.Get(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"about", "guides/setup", "index", "nested/deep"}, names)
}

func TestS3StoreFailure(t *testing.T) {
	store := NewS3Store(&fakeS3{getErr: errors.New("throttled")}, "bucket", "")

	_, err := store.Get(context.Background(), "index")
	assert.True(t, errors.Is(err, markuperrors.New(markuperrors.CodeStoreFailure)))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "throttled")
}

func TestMapStore(t *testing.T) {
	store := NewMapStore(map[string]string{"index": "[h1, Home]"})
	ctx := context.Background()

	require.NoError(t, store.Put("guides/setup", []byte("[h1, Setup]")))
	assert.Error(t, store.Put("../x", nil))

	data, err := store.Get(ctx, "index")
	require.NoError(t, err)
	assert.Equal(t, "[h1, Home]", string(data))

	_, err = store.Get(ctx, "nope")
	assert.True(t, errors.Is(err, ErrNotFound))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"guides/setup", "index"}, names)
}
