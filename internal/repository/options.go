package repository

// ListOptions carries the common list-endpoint query parameters.
type ListOptions struct {
	Search   string // case-insensitive substring match over text fields
	Category string
	Tag      string
	Page     int // 1-based
	Limit    int

	// PublicOnly restricts results to content a non-admin caller may see.
	PublicOnly bool
}

const (
	defaultLimit = 20
	maxLimit     = 100
)

// normalize clamps pagination to sane bounds.
func (o *ListOptions) normalize() {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit <= 0 {
		o.Limit = defaultLimit
	}
	if o.Limit > maxLimit {
		o.Limit = maxLimit
	}
}

func (o *ListOptions) offset() int {
	return (o.Page - 1) * o.Limit
}
