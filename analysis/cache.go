package analysis

import (
	"accircuit/types"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache 分析结果缓存, 以网络指纹和默认频率为键, 可并发使用
// 缓存中的报告是共享的, 调用方不得修改。
type Cache struct {
	reports *lru.Cache[string, *Report]
	opts    []Option
}

// NewCache 创建容量为size的缓存, opts 用于每次未命中时的分析
func NewCache(size int, opts ...Option) (*Cache, error) {
	reports, err := lru.New[string, *Report](size)
	if err != nil {
		return nil, err
	}
	return &Cache{reports: reports, opts: opts}, nil
}

// Analyze 命中时直接返回缓存的报告, 否则分析并缓存
// 失败的分析不缓存。hit 表示结果是否来自缓存。
func (c *Cache) Analyze(net *types.Network) (report *Report, hit bool, err error) {
	o := newOptions(c.opts)
	key := net.Fingerprint() + "@" + strconv.FormatFloat(o.defaultFrequency, 'g', -1, 64)
	if report, ok := c.reports.Get(key); ok {
		o.logger.Debug("analysis cache hit", "key", key[:12])
		return report, true, nil
	}
	report, err = Analyze(net, c.opts...)
	if err != nil {
		return nil, false, err
	}
	c.reports.Add(key, report)
	return report, false, nil
}

// Len 缓存的报告数量
func (c *Cache) Len() int { return c.reports.Len() }

// Purge 清空缓存
func (c *Cache) Purge() { c.reports.Purge() }
