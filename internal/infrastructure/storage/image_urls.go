package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/commerce/shipstation/internal/domain/shipstation"
)

// ObjectPresigner signs download URLs for stored objects
type ObjectPresigner interface {
	PresignGet(ctx context.Context, bucket, key string) (string, error)
}

// ErrUnsupportedScheme is returned for image URIs no backend can serve
var ErrUnsupportedScheme = errors.New("unsupported image uri scheme")

// ImageURLBuilder builds image style derivative URLs.
//
//	public://products/mug.jpg -> <public base>/styles/<style>/public/products/mug.jpg
//	s3://media/products/mug.jpg -> presigned URL of media/styles/<style>/s3/products/mug.jpg
//	http(s) URLs are returned unchanged
type ImageURLBuilder struct {
	publicBaseURL string
	style         string
	presigner     ObjectPresigner
}

// NewImageURLBuilder creates a builder. presigner may be nil when no object
// storage is configured; s3:// images then fail to resolve.
func NewImageURLBuilder(publicBaseURL, style string, presigner ObjectPresigner) *ImageURLBuilder {
	if style == "" {
		style = "thumbnail"
	}
	return &ImageURLBuilder{
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		style:         style,
		presigner:     presigner,
	}
}

// ThumbnailURL implements shipstation.ImageURLBuilder
func (b *ImageURLBuilder) ThumbnailURL(ctx context.Context, uri string) (string, error) {
	scheme, target, ok := strings.Cut(uri, "://")
	if !ok || target == "" {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, uri)
	}

	switch strings.ToLower(scheme) {
	case "public":
		if b.publicBaseURL == "" {
			return "", errors.New("public files base url is not configured")
		}
		return b.publicBaseURL + "/" + escapePath(path.Join("styles", b.style, "public", target)), nil
	case "s3":
		if b.presigner == nil {
			return "", errors.New("object storage is not configured")
		}
		bucket, key, ok := strings.Cut(target, "/")
		if !ok || key == "" {
			return "", fmt.Errorf("s3 image uri %q has no object key", uri)
		}
		return b.presigner.PresignGet(ctx, bucket, path.Join("styles", b.style, "s3", key))
	case "http", "https":
		return uri, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, uri)
	}
}

func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

var _ shipstation.ImageURLBuilder = (*ImageURLBuilder)(nil)
