package dto

// PageQuery is the shared pagination input; zero values fall back to
// page 1 / limit 10, matching the original API defaults.
type PageQuery struct {
	Page  int
	Limit int
}

func (p PageQuery) Normalize() PageQuery {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	return p
}

func (p PageQuery) Offset() int {
	return (p.Page - 1) * p.Limit
}
