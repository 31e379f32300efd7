// SPDX-License-Identifier: MIT

package artifact

import (
	"bytes"
	"context"
	"io"
	"path"

	"github.com/katalvlaran/metatwin/jsonio"
)

// ContentTypeJSON is the content type of every uploaded document.
const ContentTypeJSON = "application/json"

// RunKey is the key of document name within run runID: runs/<id>/<name>.json.
func RunKey(runID, name string) string {
	return path.Join("runs", runID, name+".json")
}

// PutJSON encodes doc with jsonio and stores it under key.
func PutJSON(ctx context.Context, st Store, key string, doc any, md map[string]string) (Info, error) {
	b, err := jsonio.Encode(doc, true)
	if err != nil {
		return Info{}, err
	}
	return st.Put(ctx, key, bytes.NewReader(b), PutOptions{ContentType: ContentTypeJSON, Metadata: md})
}

// GetJSON reads key and decodes it into doc.
func GetJSON(ctx context.Context, st Store, key string, doc any) error {
	_, rc, err := st.Get(ctx, key)
	if err != nil {
		return err
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return err
	}
	return jsonio.Decode(b, doc)
}
