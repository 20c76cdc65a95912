package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	raw, _ := io.ReadAll(params.Body)
	f.body = string(raw)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestSubmissionKey(t *testing.T) {
	at := time.Date(2026, 5, 3, 23, 30, 0, 0, time.FixedZone("JST", 9*3600))

	key := SubmissionKey("1", "client", at)
	assert.True(t, strings.HasPrefix(key, "submissions/1/2026-05-03/client-"), key)
	assert.True(t, strings.HasSuffix(key, ".json"), key)

	other := SubmissionKey("1", "client", at)
	assert.NotEqual(t, key, other, "keys must be unique per submission")

	assert.True(t, strings.HasPrefix(SubmissionKey("", "form_event", at), "submissions/unknown/"))
}

func TestCloudflareR2Archiver_Archive(t *testing.T) {
	t.Run("puts json object", func(t *testing.T) {
		putter := &fakePutter{}
		archiver := newArchiver(putter, "bucket")

		err := archiver.Archive(context.Background(), "submissions/1/x.json", []byte(`{"userId":"U1"}`))
		require.NoError(t, err)

		assert.Equal(t, "bucket", aws.ToString(putter.input.Bucket))
		assert.Equal(t, "submissions/1/x.json", aws.ToString(putter.input.Key))
		assert.Equal(t, "application/json", aws.ToString(putter.input.ContentType))
		assert.Equal(t, `{"userId":"U1"}`, putter.body)
	})

	t.Run("wraps put failure", func(t *testing.T) {
		putter := &fakePutter{err: errors.New("boom")}
		archiver := newArchiver(putter, "bucket")

		err := archiver.Archive(context.Background(), "k", []byte("{}"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "key: k")
	})
}

func TestNewCloudflareR2Archiver_RequiresConfig(t *testing.T) {
	_, err := NewCloudflareR2Archiver(context.Background(), CloudflareR2ArchiverConfig{AccountID: "acc"})
	assert.Error(t, err)
}
