package paging

// PageMeta describes one page's position within the deck, for status bars
// and non-interactive output.
type PageMeta struct {
	Index       int  `json:"index"        yaml:"index"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	PageCount   int  `json:"page_count"   yaml:"page_count"`
	TotalRows   int  `json:"total_rows"   yaml:"total_rows"`
	RowStart    int  `json:"row_start"    yaml:"row_start"`
	RowEnd      int  `json:"row_end"      yaml:"row_end"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// Meta reports metadata for page i without extracting it. Fails with
// ErrPageOutOfRange when i is outside [0, Count()).
func (p *Pager) Meta(i int) (PageMeta, error) {
	if i < 0 || i >= p.count {
		return PageMeta{}, ErrPageOutOfRange
	}

	start := i * p.pageSize
	end := min(start+p.pageSize, p.deck.Rows())

	return PageMeta{
		Index:       i,
		PageSize:    p.pageSize,
		PageCount:   p.count,
		TotalRows:   p.deck.Rows(),
		RowStart:    start,
		RowEnd:      end,
		HasPrevious: i > 0,
		HasNext:     i < p.count-1,
	}, nil
}
