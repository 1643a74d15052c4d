package domain

// Selection is the set of task ids picked for a bulk action, in pick order.
type Selection struct {
	ids []string
}

func NewSelection(ids ...string) *Selection {
	s := &Selection{}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (s *Selection) Add(id string) {
	if id == "" || s.Contains(id) {
		return
	}
	s.ids = append(s.ids, id)
}

// Toggle adds id when absent and removes it otherwise.
func (s *Selection) Toggle(id string) {
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
	s.Add(id)
}

func (s *Selection) Contains(id string) bool {
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// IDs returns a copy of the selected ids.
func (s *Selection) IDs() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.ids...)
}

func (s *Selection) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

func (s *Selection) Clear() {
	if s == nil {
		return
	}
	s.ids = nil
}
