package ports

// Sort orders follow the store's convention: 1 ascending, -1 descending.
const (
	SortAsc  = 1
	SortDesc = -1
)

const (
	DefaultPage    = 1
	DefaultPerPage = 30
	MaxPerPage     = 100
)

// PageParams is the shared input shape for every list-producing
// operation. Values are validated at the request boundary; services and
// repositories may assume Page >= 1 and 1 <= PerPage <= MaxPerPage.
type PageParams struct {
	Page      int
	PerPage   int
	SortBy    string
	SortOrder int
}

// Skip returns the number of records to skip for this page.
func (p PageParams) Skip() int {
	return p.PerPage * (p.Page - 1)
}

// PageInfo is the shared output shape accompanying every page of items.
type PageInfo struct {
	Pages   int
	HasPrev bool
	HasNext bool
}

// NewPageInfo derives page flags from the total match count:
// Pages = ceil(total/perPage), HasPrev = page > 1, HasNext = page < Pages.
// A page past the end yields HasNext false and, when any pages exist,
// HasPrev true.
func NewPageInfo(total int64, params PageParams) PageInfo {
	pages := int((total + int64(params.PerPage) - 1) / int64(params.PerPage))
	return PageInfo{
		Pages:   pages,
		HasPrev: params.Page > 1,
		HasNext: params.Page < pages,
	}
}
