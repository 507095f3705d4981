package lsp

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/grindlemire/qmlfmt/pkg/formatter"
)

// formatCache memoizes formatting results by content and options. Editors
// ask for diagnostics and formatting of the same text repeatedly.
type formatCache struct {
	entries *lru.Cache[uint64, formatter.FormatResult]
}

func newFormatCache(size int) *formatCache {
	entries, err := lru.New[uint64, formatter.FormatResult](size)
	if err != nil {
		// Only a non-positive size fails.
		panic(fmt.Sprintf("lsp: format cache size %d: %v", size, err))
	}
	return &formatCache{entries: entries}
}

// format returns the cached result for content under opts, formatting and
// caching it on a miss.
func (c *formatCache) format(content string, opts formatter.Options) (formatter.FormatResult, error) {
	key := cacheKey(content, opts)
	if res, ok := c.entries.Get(key); ok {
		return res, nil
	}

	f, err := formatter.NewWithOptions(opts)
	if err != nil {
		return formatter.FormatResult{}, err
	}
	res := f.FormatWithResult(content)
	c.entries.Add(key, res)
	return res, nil
}

func (c *formatCache) len() int {
	return c.entries.Len()
}

func cacheKey(content string, opts formatter.Options) uint64 {
	d := xxhash.New()
	b := opts.Brackets
	fmt.Fprintf(d, "%d\x00%d\x00%d\x00%t\x00%s\x00%s\x00%s\x00",
		opts.Delimiter, opts.IndentWidth, opts.BlankPolicy, opts.ClampNegative,
		b.OutdentBefore, b.IndentAfter, b.OutdentAfter)
	_, _ = d.WriteString(content)
	return d.Sum64()
}
