package artifact_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatwin/artifact"
)

// fakeS3 serves the subset of the S3 REST API used by the store, with
// path-style addressing and one-entry pages on the first list call.
type fakeS3 struct {
	mu    sync.Mutex
	state map[string]fakeObject
}

type fakeObject struct {
	body        []byte
	contentType string
	metadata    map[string]string
}

func response(code int, body []byte, h http.Header) *http.Response {
	if h == nil {
		h = http.Header{}
	}
	return &http.Response{StatusCode: code, Body: io.NopCloser(bytes.NewReader(body)), Header: h}
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}

	if req.Method == http.MethodGet && req.URL.Query().Get("list-type") == "2" {
		return f.list(req.URL.Query().Get("prefix"), req.URL.Query().Get("continuation-token")), nil
	}

	switch req.Method {
	case http.MethodHead, http.MethodGet:
		obj, ok := f.state[key]
		if !ok {
			return response(http.StatusNotFound, nil, nil), nil
		}
		h := http.Header{
			"Content-Length": {fmt.Sprintf("%d", len(obj.body))},
			"Content-Type":   {obj.contentType},
			"Etag":           {`"etag-` + key + `"`},
			"Last-Modified":  {time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC).Format(http.TimeFormat)},
		}
		for k, v := range obj.metadata {
			h.Set("X-Amz-Meta-"+k, v)
		}
		if req.Method == http.MethodHead {
			return response(http.StatusOK, nil, h), nil
		}
		return response(http.StatusOK, obj.body, h), nil
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		md := map[string]string{}
		for k, v := range req.Header {
			if strings.HasPrefix(strings.ToLower(k), "x-amz-meta-") {
				md[strings.ToLower(strings.TrimPrefix(strings.ToLower(k), "x-amz-meta-"))] = v[0]
			}
		}
		f.state[key] = fakeObject{body: body, contentType: req.Header.Get("Content-Type"), metadata: md}
		return response(http.StatusOK, nil, http.Header{"Etag": {`"etag"`}}), nil
	}
	return response(http.StatusNotImplemented, nil, nil), nil
}

func (f *fakeS3) list(prefix, token string) *http.Response {
	var keys []string
	for k := range f.state {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><ListBucketResult>`)
	if token == "" && len(keys) > 1 {
		b.WriteString("<IsTruncated>true</IsTruncated><NextContinuationToken>next</NextContinuationToken>")
		keys = keys[:1]
	} else {
		b.WriteString("<IsTruncated>false</IsTruncated>")
		if token != "" {
			keys = keys[1:]
		}
	}
	for _, k := range keys {
		fmt.Fprintf(&b, "<Contents><Key>%s</Key><Size>%d</Size><LastModified>2026-01-02T03:04:05Z</LastModified></Contents>",
			k, len(f.state[k].body))
	}
	b.WriteString("</ListBucketResult>")

	return response(http.StatusOK, []byte(b.String()), http.Header{"Content-Type": {"application/xml"}})
}

func newFakeS3(t *testing.T) (*artifact.S3, *fakeS3) {
	t.Helper()
	fake := &fakeS3{state: make(map[string]fakeObject)}
	st, err := artifact.NewS3(context.Background(), artifact.S3Config{
		Bucket:          "metatwin",
		Endpoint:        "https://mock.s3.local",
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		PathStyle:       true,
		HTTPClient:      &http.Client{Transport: fake},
	})
	require.NoError(t, err)

	return st, fake
}

func TestS3_PutGetList(t *testing.T) {
	ctx := context.Background()
	st, fake := newFakeS3(t)
	assert.Equal(t, artifact.DriverS3, st.Driver())

	info, err := st.Put(ctx, "runs/a/flux.json", strings.NewReader(`{"x":1}`),
		artifact.PutOptions{ContentType: artifact.ContentTypeJSON, Metadata: map[string]string{"mode": "linear"}})
	require.NoError(t, err)
	assert.Equal(t, int64(7), info.Size)
	assert.Equal(t, "etag-runs/a/flux.json", info.ETag)
	assert.Equal(t, artifact.ContentTypeJSON, info.ContentType)
	assert.Equal(t, "linear", fake.state["runs/a/flux.json"].metadata["mode"])

	_, err = st.Put(ctx, "runs/a/flux.json", strings.NewReader("again"), artifact.PutOptions{})
	require.ErrorIs(t, err, artifact.ErrExists)
	_, err = st.Put(ctx, "../x", strings.NewReader("x"), artifact.PutOptions{})
	require.ErrorIs(t, err, artifact.ErrInvalidKey)

	_, err = artifact.PutJSON(ctx, st, artifact.RunKey("a", "fva"), map[string]int{"n": 2}, nil)
	require.NoError(t, err)

	got, rc, err := st.Get(ctx, "runs/a/flux.json")
	require.NoError(t, err)
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, `{"x":1}`, string(b))
	assert.Equal(t, 2026, got.LastModified.Year())

	list, err := st.List(ctx, "runs/a/")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "runs/a/flux.json", list[0].Key)
	assert.Equal(t, "runs/a/fva.json", list[1].Key)

	var doc map[string]int
	require.NoError(t, artifact.GetJSON(ctx, st, "runs/a/fva.json", &doc))
	assert.Equal(t, 2, doc["n"])

	_, _, err = st.Get(ctx, "runs/none.json")
	require.Error(t, err)
}
