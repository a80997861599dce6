package services

// Paging defaults
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	MaxPage      = 100000
)

// Paging is a requested page window
type Paging struct {
	Page  int
	Limit int
}

// Normalize applies defaults and caps the page and limit
func (p Paging) Normalize() Paging {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset is the number of rows to skip
func (p Paging) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination describes a returned page. Only one of the totals is set.
type Pagination struct {
	CurrentPage       int    `json:"current_page"`
	TotalPages        int    `json:"total_pages"`
	TotalJobs         *int64 `json:"total_jobs,omitempty"`
	TotalApplications *int64 `json:"total_applications,omitempty"`
	HasNext           bool   `json:"has_next"`
	HasPrev           bool   `json:"has_prev"`
	PerPage           int    `json:"per_page"`
}

func newPagination(p Paging, total int64) Pagination {
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Pagination{
		CurrentPage: p.Page,
		TotalPages:  pages,
		HasNext:     p.Page < pages,
		HasPrev:     p.Page > 1,
		PerPage:     p.Limit,
	}
}

// JobPagination builds a page description counted in jobs
func JobPagination(p Paging, total int64) Pagination {
	pg := newPagination(p, total)
	pg.TotalJobs = &total
	return pg
}

// ApplicationPagination builds a page description counted in applications
func ApplicationPagination(p Paging, total int64) Pagination {
	pg := newPagination(p, total)
	pg.TotalApplications = &total
	return pg
}
