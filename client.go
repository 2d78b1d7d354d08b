package passport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/passport/pkg/cache"
	"github.com/dmitrymomot/passport/pkg/logger"
	"github.com/dmitrymomot/passport/pkg/wire"
)

const (
	endpointData = "account/data"
	endpointUID  = "account/uid"
	endpointAuth = "authentication"
)

type dataPayload struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Client performs account operations for one visitor. Its value cache is
// private to the instance, so a Client should not outlive the request or
// session it was built for.
type Client struct {
	transport  *Transport
	creds      CredentialStore
	sess       SessionStore
	sessionKey string
	cache      *cache.LRU[string, any]
	logger     *slog.Logger
}

// NewClient builds a client with its own value cache. Most hosts use
// Service.Client or Service.ForRequest instead.
func NewClient(t *Transport, creds CredentialStore, sess SessionStore, cfg Config) *Client {
	size := cfg.CacheSize
	if size <= 0 {
		size = DefaultConfig().CacheSize
	}
	sessionKey := cfg.SessionKey
	if sessionKey == "" {
		sessionKey = DefaultConfig().SessionKey
	}
	return &Client{
		transport:  t,
		creds:      creds,
		sess:       sess,
		sessionKey: sessionKey,
		cache:      cache.NewLRU[string, any](size),
		logger:     t.logger,
	}
}

// Credential returns the stored credential or ERR_LOGIN.
func (c *Client) Credential(ctx context.Context) (string, error) {
	key, ok := c.creds.Key(ctx)
	if !ok {
		return "", ErrLogin
	}
	return key, nil
}

// UID returns the cached account uid without a remote call.
func (c *Client) UID(ctx context.Context) (string, bool) {
	uid, ok := c.sess.Get(ctx, c.sessionKey)
	if !ok || uid == "" {
		return "", false
	}
	return uid, true
}

// Load resolves the account uid once per session.
func (c *Client) Load(ctx context.Context) error {
	if _, ok := c.UID(ctx); ok {
		return nil
	}

	key, err := c.Credential(ctx)
	if err != nil {
		return err
	}
	env, err := c.call(ctx, http.MethodGet, endpointUID, Request{Query: url.Values{"key": {key}}})
	if err != nil {
		return err
	}
	uid, err := env.String("uid")
	if err != nil {
		return err
	}
	return c.sess.Set(ctx, c.sessionKey, uid)
}

// Logout invalidates the credential remotely, then clears the credential,
// the cached uid and the value cache whatever the remote outcome. The
// remote error, or ERR_LOGIN without a credential, is returned after
// cleanup.
func (c *Client) Logout(ctx context.Context) error {
	key, err := c.Credential(ctx)
	if err == nil {
		_, err = c.call(ctx, http.MethodDelete, endpointAuth, Request{Query: url.Values{"key": {key}}})
		if err != nil {
			c.logger.WarnContext(ctx, "passport logout failed remotely",
				logger.ErrorCode(CodeOf(err)), logger.Error(err))
		}
	}

	c.cache.Purge()
	cleanup := errors.Join(c.creds.ClearKey(ctx), c.sess.Delete(ctx, c.sessionKey))
	if err != nil {
		if cleanup != nil {
			c.logger.WarnContext(ctx, "passport logout cleanup failed", logger.Error(cleanup))
		}
		return err
	}
	return cleanup
}

// Add creates a field. It fails with ERR_ADD when the field is already in
// the local cache; the remote store is not consulted for that check.
func (c *Client) Add(ctx context.Context, name string, value any) (Envelope, error) {
	if c.cache.Contains(name) {
		return nil, newError(CodeAdd, "key already exists", nil)
	}
	raw, decoded, err := encode(value)
	if err != nil {
		return nil, err
	}

	c.cache.Put(name, decoded)
	env, err := c.AddRaw(ctx, name, raw)
	if err != nil {
		c.cache.Remove(name)
		return nil, err
	}
	return env, nil
}

// AddRaw creates a field from a wire string. The cache is not touched.
func (c *Client) AddRaw(ctx context.Context, name, raw string) (Envelope, error) {
	return c.write(ctx, http.MethodPost, name, raw)
}

// Get returns the field value, from the cache when possible.
func (c *Client) Get(ctx context.Context, name string) (any, error) {
	if v, ok := c.cache.Get(name); ok {
		return v, nil
	}

	raw, err := c.GetRaw(ctx, name)
	if err != nil {
		return nil, err
	}
	v, err := wire.Decode(raw)
	if err != nil {
		return nil, newError(CodeDecode, "malformed wire value", err)
	}
	c.cache.Put(name, v)
	return v, nil
}

// GetInto decodes the field value into dst, a non-nil pointer.
func (c *Client) GetInto(ctx context.Context, name string, dst any) error {
	if v, ok := c.cache.Get(name); ok {
		if err := wire.Convert(v, dst); err != nil {
			return newError(CodeDecode, "cached value does not fit destination", err)
		}
		return nil
	}

	raw, err := c.GetRaw(ctx, name)
	if err != nil {
		return err
	}
	v, err := wire.Decode(raw)
	if err != nil {
		return newError(CodeDecode, "malformed wire value", err)
	}
	if err := wire.DecodeInto(raw, dst); err != nil {
		return newError(CodeDecode, "value does not fit destination", err)
	}
	c.cache.Put(name, v)
	return nil
}

// GetRaw returns the wire string stored for the field.
func (c *Client) GetRaw(ctx context.Context, name string) (string, error) {
	key, err := c.Credential(ctx)
	if err != nil {
		return "", err
	}
	env, err := c.call(ctx, http.MethodGet, endpointData, Request{Query: url.Values{"key": {key}, "name": {name}}})
	if err != nil {
		return "", err
	}
	return env.String("value")
}

// Set stores the field value, overwriting any previous one.
func (c *Client) Set(ctx context.Context, name string, value any) (Envelope, error) {
	raw, decoded, err := encode(value)
	if err != nil {
		return nil, err
	}

	c.cache.Put(name, decoded)
	env, err := c.SetRaw(ctx, name, raw)
	if err != nil {
		c.cache.Remove(name)
		return nil, err
	}
	return env, nil
}

// SetRaw stores a wire string. The cache is not touched.
func (c *Client) SetRaw(ctx context.Context, name, raw string) (Envelope, error) {
	return c.write(ctx, http.MethodPut, name, raw)
}

// Remove deletes the field and returns the success flag reported by the
// service.
func (c *Client) Remove(ctx context.Context, name string) (bool, error) {
	c.cache.Remove(name)

	key, err := c.Credential(ctx)
	if err != nil {
		return false, err
	}
	env, err := c.call(ctx, http.MethodDelete, endpointData, Request{Query: url.Values{"key": {key}, "name": {name}}})
	if err != nil {
		return false, err
	}
	return env.Bool("success")
}

func (c *Client) write(ctx context.Context, method, name, raw string) (Envelope, error) {
	key, err := c.Credential(ctx)
	if err != nil {
		return nil, err
	}
	return c.call(ctx, method, endpointData, Request{Body: dataPayload{Key: key, Name: name, Value: raw}})
}

// call runs one request and turns an envelope error into ERR_RESPONSE.
func (c *Client) call(ctx context.Context, method, endpoint string, req Request) (Envelope, error) {
	env, err := c.transport.Do(ctx, method, endpoint, req)
	if err != nil {
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}
	return env, nil
}

// encode returns the wire string of value and the value decoded back from
// it, which is what the cache holds so hits and misses yield the same types.
func encode(value any) (string, any, error) {
	raw, err := wire.Encode(value)
	if err != nil {
		return "", nil, newError(CodeEncode, "value cannot be encoded", err)
	}
	decoded, err := wire.Decode(raw)
	if err != nil {
		return "", nil, newError(CodeEncode, "value does not round-trip", err)
	}
	return raw, decoded, nil
}
