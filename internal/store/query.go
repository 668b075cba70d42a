package store

// PageQuery carries the listing window parameters. Zero values fall back to
// page 1 / size 10; the window over the filtered set is
// [(page-1)*size, page*size).
type PageQuery struct {
	Page int
	Size int
	// Asc flips the updated_at ordering; default is newest first.
	Asc bool
}

func (q PageQuery) normalized() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 {
		q.Size = 10
	}
	return q
}

func (q PageQuery) offset() int { return (q.Page - 1) * q.Size }

func (q PageQuery) order() string {
	if q.Asc {
		return "updated_at ASC"
	}
	return "updated_at DESC"
}

// Paged is the listing envelope: the window plus enough metadata for the
// caller to know whether another page exists.
type Paged[T any] struct {
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
	More  bool  `json:"more"`
	Items []T   `json:"-"`
}

func newPaged[T any](q PageQuery, total int64, items []T) Paged[T] {
	return Paged[T]{
		Page:  q.Page,
		Size:  q.Size,
		Total: total,
		More:  int64(q.Page*q.Size) < total,
		Items: items,
	}
}
