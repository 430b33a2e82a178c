package ui

import (
	"context"
	"time"

	"github.com/gravitrone/shearch/internal/buffer"
	"github.com/gravitrone/shearch/internal/catalog"
)

// DefaultResolveTimeout bounds one computed argument when no timeout is set.
const DefaultResolveTimeout = 2 * time.Second

type resolveKey struct {
	record  catalog.ID
	command string
}

type resolved struct {
	value string
	err   error
}

// resolveCache runs each computed argument at most once per record while the
// catalog is unchanged. Failures are remembered too, so a command that timed
// out does not stall the next keystroke again.
type resolveCache struct {
	inner   buffer.Resolver
	timeout time.Duration
	values  map[resolveKey]resolved
}

func newResolveCache(inner buffer.Resolver, timeout time.Duration) *resolveCache {
	if timeout <= 0 {
		timeout = DefaultResolveTimeout
	}
	return &resolveCache{
		inner:   inner,
		timeout: timeout,
		values:  make(map[resolveKey]resolved),
	}
}

// forRecord returns the resolver used while expanding id's template. It is nil
// when there is no underlying resolver, so expansion reports ErrNoResolver.
func (c *resolveCache) forRecord(id catalog.ID) buffer.Resolver {
	if c.inner == nil {
		return nil
	}
	return buffer.ResolverFunc(func(ctx context.Context, command string) (string, error) {
		k := resolveKey{record: id, command: command}
		if r, ok := c.values[k]; ok {
			return r.value, r.err
		}
		ctx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()
		value, err := c.inner.Resolve(ctx, command)
		c.values[k] = resolved{value: value, err: err}
		return value, err
	})
}

func (c *resolveCache) reset() {
	c.values = make(map[resolveKey]resolved)
}
