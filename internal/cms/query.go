package cms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"vostra.ai/vostracode-web/internal/httputil"
)

const (
	sourceCache    = "cache"
	sourceRemote   = "remote"
	sourceSnapshot = "snapshot"
	sourceLocal    = "local"

	maxResponseBytes = 8 << 20
)

var tracer = otel.Tracer("vostra.ai/vostracode-web/internal/cms")

// request names one logical query: the GROQ text sent remotely and the local file serving it offline.
type request struct {
	name  string
	groq  string
	local localSource
}

// query resolves req through cache, remote, snapshot, then local content.
func (c *Client) query(ctx context.Context, req request) (gjson.Result, error) {
	ctx, span := tracer.Start(ctx, "cms.query", trace.WithAttributes(attribute.String("cms.query", req.name)))
	defer span.End()

	if raw, ok := c.cache.get(req.groq); ok {
		c.fetches.Record(ctx, req.name, sourceCache)
		span.SetAttributes(attribute.String("cms.source", sourceCache))
		return gjson.Parse(raw), nil
	}

	type outcome struct {
		raw    string
		source string
	}
	// The shared fetch runs detached from the caller that started it. Each caller stops waiting
	// when its own context ends.
	ch := c.group.DoChan(req.groq, func() (any, error) {
		raw, source, err := c.resolve(context.WithoutCancel(ctx), req)
		if err != nil {
			return outcome{}, err
		}
		if source == sourceRemote || !c.Remote() {
			c.cache.set(req.groq, raw)
		}
		return outcome{raw: raw, source: source}, nil
	})
	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		res = singleflight.Result{Err: ctx.Err()}
	}
	if err := res.Err; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return gjson.Result{}, err
	}
	out := res.Val.(outcome)
	c.fetches.Record(ctx, req.name, out.source)
	span.SetAttributes(attribute.String("cms.source", out.source))
	return gjson.Parse(out.raw), nil
}

func (c *Client) resolve(ctx context.Context, req request) (string, string, error) {
	var remoteErr error
	if c.Remote() {
		raw, err := c.fetchRemote(ctx, req.groq)
		if err == nil {
			if c.snapshots != nil {
				if perr := c.snapshots.Put(ctx, req.groq, []byte(raw)); perr != nil {
					c.logger.Warn("cms: store snapshot", zap.String("query", req.name), zap.Error(perr))
				}
			}
			return raw, sourceRemote, nil
		}
		if cerr := ctx.Err(); cerr != nil {
			return "", "", cerr
		}
		remoteErr = err
		c.logger.Warn("cms: remote query failed, falling back",
			zap.String("query", req.name), zap.Error(err))

		if c.snapshots != nil {
			body, fetchedAt, serr := c.snapshots.Get(ctx, req.groq)
			if serr == nil && gjson.ValidBytes(body) {
				c.logger.Info("cms: serving snapshot",
					zap.String("query", req.name), zap.Time("fetched_at", fetchedAt))
				return string(body), sourceSnapshot, nil
			}
		}
	}

	raw, err := readLocal(c.ContentDir(), req.local)
	if err == nil {
		return raw, sourceLocal, nil
	}
	if remoteErr != nil {
		return "", "", fmt.Errorf("%w: %s: %w", ErrUnavailable, req.name, remoteErr)
	}
	return "", "", err
}

func (c *Client) fetchRemote(ctx context.Context, groq string) (string, error) {
	endpoint, err := url.JoinPath(c.baseURL, "v"+c.apiVersion, "data", "query", c.dataset)
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	q := req.URL.Query()
	q.Set("query", groq)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := httputil.DoWithRetry(ctx, c.http, req, 0)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		msg := gjson.GetBytes(body, "error.description").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", fmt.Errorf("cms: remote status %d: %s", resp.StatusCode, msg)
	}
	if !gjson.ValidBytes(body) {
		return "", errors.New("cms: remote returned invalid JSON")
	}
	result := gjson.GetBytes(body, "result")
	if !result.Exists() {
		return "", errors.New("cms: remote response missing result")
	}
	return result.Raw, nil
}
