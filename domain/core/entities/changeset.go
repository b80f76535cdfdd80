package entities

// ChangeSet is a partial graph snapshot proposed by an advisory source.
// A nil collection means "leave the store's collection untouched"; an
// empty non-nil collection replaces it with nothing. JSON decoding keeps
// that distinction: absent keys stay nil.
type ChangeSet struct {
	Nodes    []Node    `json:"nodes"`
	Edges    []Edge    `json:"edges"`
	Sections []Section `json:"sections"`
}

// IsEmpty reports whether the change-set carries no collections at all
func (c ChangeSet) IsEmpty() bool {
	return c.Nodes == nil && c.Edges == nil && c.Sections == nil
}
