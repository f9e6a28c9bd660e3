package repository

// ListOptions bounds a list query. A zero Limit returns every row.
type ListOptions struct {
	Limit  int
	Offset int
}
