package domain

// Page is one fetched slice of a paginated backend result, mirroring Spring's
// page envelope. Number is zero-based.
type Page[T any] struct {
	Content       []T `json:"content"`
	TotalPages    int `json:"totalPages"`
	TotalElements int `json:"totalElements"`
	Size          int `json:"size"`
	Number        int `json:"number"`
}

func (p Page[T]) HasPrev() bool { return p.Number > 0 }

func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages-1 }
