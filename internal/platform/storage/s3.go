// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package storage provides the S3-compatible object storage client used for
// blog cover images. It is configured for path-style access so that MinIO,
// R2 and Ceph endpoints work alongside AWS.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	// httpTimeout bounds every S3 round-trip.
	httpTimeout = 15 * time.Second

	// maxAttempts is one try plus one retry on transient failure.
	maxAttempts = 2
)

// Options configures a [Client].
type Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

// Client wraps an S3 client for a single public bucket.
type Client struct {
	s3        *s3.Client
	bucket    string
	baseURL   string
	publicURL string
}

// New creates an S3 storage client. It returns (nil, nil) when the bucket or
// credentials are empty, allowing the app to start without storage.
func New(options Options) (*Client, error) {
	if options.Bucket == "" || options.AccessKey == "" || options.SecretKey == "" {
		return nil, nil
	}

	region := options.Region
	if region == "" {
		region = "auto"
	}

	endpoint := strings.TrimRight(options.Endpoint, "/")

	s3Options := s3.Options{
		Region:           region,
		Credentials:      credentials.NewStaticCredentialsProvider(options.AccessKey, options.SecretKey, ""),
		UsePathStyle:     true,
		RetryMaxAttempts: maxAttempts,
		HTTPClient:       &http.Client{Timeout: httpTimeout},
	}
	if endpoint != "" {
		s3Options.BaseEndpoint = aws.String(endpoint)
	}

	baseURL := endpoint + "/" + options.Bucket
	if endpoint == "" {
		baseURL = fmt.Sprintf("https://s3.%s.amazonaws.com/%s", region, options.Bucket)
	}

	return &Client{
		s3:        s3.New(s3Options),
		bucket:    options.Bucket,
		baseURL:   baseURL,
		publicURL: strings.TrimRight(options.PublicURL, "/"),
	}, nil
}

// Put stores an object under key with the given content type.
func (c *Client) Put(ctx context.Context, key, contentType string, body []byte) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return fmt.Errorf("s3 upload %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// Remove deletes the object stored under key. Missing objects are not an error.
func (c *Client) Remove(ctx context.Context, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// URL returns the public URL for key.
func (c *Client) URL(key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return c.baseURL + "/" + key
}

// KeyFromURL extracts the object key from a URL produced by [Client.URL].
// It returns ("", false) for URLs that do not belong to this bucket.
func (c *Client) KeyFromURL(rawURL string) (string, bool) {
	for _, base := range []string{c.publicURL, c.baseURL} {
		if base == "" {
			continue
		}
		if key, ok := strings.CutPrefix(rawURL, base+"/"); ok && key != "" {
			return key, true
		}
	}
	return "", false
}
