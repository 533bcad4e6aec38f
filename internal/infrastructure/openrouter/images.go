package openrouter

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/errgroup"

	"github.com/roomcraft/roomcraft-server/internal/domain/inspiration"
)

// resolveImages returns the URLs to attach, in order. With inline images on,
// every URL is fetched concurrently and replaced by a base64 data URL.
func (c *Client) resolveImages(ctx context.Context, urls []string) ([]string, error) {
	if !c.cfg.InlineImages {
		return urls, nil
	}

	out := make([]string, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	for i, u := range urls {
		g.Go(func() error {
			dataURL, err := c.fetchImageAsDataURL(gctx, u)
			if err != nil {
				return err
			}
			out[i] = dataURL
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) fetchImageAsDataURL(ctx context.Context, url string) (string, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, c.cfg.ImageFetchTimeout)
	defer cancel()

	resp, err := c.images.R().SetContext(fetchCtx).Get(url)
	if err != nil {
		return "", inspiration.NewError(inspiration.KindUnknown, "Failed to convert image to base64", err)
	}
	if resp.IsError() {
		return "", inspiration.NewError(inspiration.KindUnknown,
			fmt.Sprintf("Failed to fetch image: %d", resp.StatusCode()), nil)
	}

	data := resp.Bytes()
	if len(data) == 0 {
		return "", inspiration.NewError(inspiration.KindUnknown, "Failed to fetch image: empty body", nil)
	}
	if int64(len(data)) > c.cfg.MaxImageBytes {
		return "", inspiration.NewError(inspiration.KindUnknown,
			fmt.Sprintf("Failed to fetch image: %d bytes exceeds limit", len(data)), nil)
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", inspiration.NewError(inspiration.KindUnknown,
			fmt.Sprintf("Failed to fetch image: unsupported content %s", mime.String()), nil)
	}
	return "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
