package s3

import (
	"context"
	"errors"
	"io"
	"testing"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.in = in
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = b
	return &s3.PutObjectOutput{}, nil
}

func TestUploader_Put(t *testing.T) {
	fp := &fakePutter{}
	u := NewWithClient(fp, "meds-backups")

	require.NoError(t, u.Put(context.Background(), "backups/x.json", []byte(`{"ok":true}`)))

	assert.Equal(t, "meds-backups", aws.ToString(fp.in.Bucket))
	assert.Equal(t, "backups/x.json", aws.ToString(fp.in.Key))
	assert.Equal(t, "application/json", aws.ToString(fp.in.ContentType))
	assert.Equal(t, int64(11), aws.ToInt64(fp.in.ContentLength))
	assert.JSONEq(t, `{"ok":true}`, string(fp.body))
}

func TestUploader_PutError(t *testing.T) {
	boom := errors.New("boom")
	u := NewWithClient(&fakePutter{err: boom}, "b")

	err := u.Put(context.Background(), "k", []byte("{}"))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	require.Error(t, err)
}
