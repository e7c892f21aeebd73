package pubgen

import "sync"

// htmlCache memoizes a post's rendered body. The conversion runs at most
// once even under concurrent readers.
type htmlCache struct {
	once  sync.Once
	value string
	err   error
}

func (c *htmlCache) get(compute func() (string, error)) (string, error) {
	c.once.Do(func() {
		c.value, c.err = compute()
	})
	return c.value, c.err
}
