package anuvad

import (
	"context"
	"io"
	"time"
)

// Upload validates and submits a document for translation. The file is
// streamed; it is never buffered whole in memory. Validation failures
// are returned before any network traffic.
func (c *Client) Upload(ctx context.Context, params UploadParams, file io.Reader) (JobHandle, error) {
	start := time.Now()

	handle, err := c.uploadSvc.Submit(ctx, toDomainUpload(params), file)
	c.obs.observe("upload", start, err,
		"filename", params.Filename, "language", string(params.Language))
	if err != nil {
		return JobHandle{}, err
	}
	return fromDomainHandle(handle), nil
}
