// Package pagination provides the shared page/size request and
// response shapes used by list endpoints.
package pagination

const (
	defaultSize = 20
	maxSize     = 100
)

// Params is the caller-supplied page selection.
type Params struct {
	Page int `form:"page" json:"page"`
	Size int `form:"size" json:"size"`
}

// Normalize clamps the params to sane bounds.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 {
		p.Size = defaultSize
	}
	if p.Size > maxSize {
		p.Size = maxSize
	}
	return p
}

// Offset is the row offset for the normalized page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Size
}

// PageInfo describes the page actually returned.
type PageInfo struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalCount int64 `json:"totalCount"`
}

// NewPageInfo builds the response info for a normalized request.
func NewPageInfo(p Params, total int64) PageInfo {
	n := p.Normalize()
	return PageInfo{Page: n.Page, Size: n.Size, TotalCount: total}
}
