package repositories

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Pagination is a 1-based page window.
type Pagination struct {
	Page  int
	Limit int
}

// Normalize clamps the window to sane bounds.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

func (p Pagination) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.Limit
}

// PageCount returns how many pages of p.Limit rows cover total rows.
func (p Pagination) PageCount(total int64) int {
	p = p.Normalize()
	if total == 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}
