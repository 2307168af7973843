package domain

type Page struct {
	Movies        []MovieView
	PageNumber    int
	PageSize      int
	TotalElements int
	TotalPages    int
	IsLast        bool
}

func NewPage(movies []MovieView, totalElements, page, pageSize int) *Page {
	totalPages := (totalElements + pageSize - 1) / pageSize

	return &Page{
		Movies:        movies,
		PageNumber:    page,
		PageSize:      pageSize,
		TotalElements: totalElements,
		TotalPages:    totalPages,
		IsLast:        page+1 >= totalPages,
	}
}
