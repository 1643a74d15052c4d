package view

import (
	"strings"

	"github.com/fastygo/taskbuddy/domain"
)

// Collapsed tracks which sections are folded. It only affects rendering.
type Collapsed map[SectionKey]bool

// ParseCollapsed reads a comma separated list of section keys.
func ParseCollapsed(raw string) Collapsed {
	collapsed := Collapsed{}
	for _, part := range strings.Split(raw, ",") {
		key := SectionKey(strings.TrimSpace(part))
		for _, known := range SectionOrder {
			if key == known {
				collapsed[key] = true
			}
		}
	}
	return collapsed
}

// Toggle flips the collapsed flag of key.
func (c Collapsed) Toggle(key SectionKey) {
	c[key] = !c[key]
}

// Request is everything a caller controls about a projection.
type Request struct {
	Mode      Mode
	Criteria  Criteria
	Collapsed Collapsed
}

type Section struct {
	Key       SectionKey    `json:"key"`
	Title     string        `json:"title"`
	Count     int           `json:"count"`
	Collapsed bool          `json:"collapsed"`
	Tasks     []domain.Task `json:"tasks"`
}

// Projection is the rendered state of one view for one signed-in user.
type Projection struct {
	Mode     Mode            `json:"mode"`
	User     domain.Identity `json:"user"`
	Total    int             `json:"total"`
	Matched  int             `json:"matched"`
	Empty    bool            `json:"empty"`
	Sections []Section       `json:"sections"`
}

var (
	listTitles = map[SectionKey]string{
		SectionTodo:       "Todo",
		SectionInProgress: "In-Progress",
		SectionCompleted:  "Completed",
	}
	boardTitles = map[SectionKey]string{
		SectionTodo:       "TO-DO",
		SectionInProgress: "IN-PROGRESS",
		SectionCompleted:  "COMPLETED",
	}
)

// Build filters and groups tasks for the requested mode. The session is
// passed in explicitly; a nil session yields an anonymous user.
func Build(session *domain.Session, tasks []domain.Task, req Request) Projection {
	filtered := Filter(tasks, req.Criteria)

	mode := req.Mode
	if mode != ModeBoard {
		mode = ModeList
	}

	groups, titles := GroupList(filtered), listTitles
	if mode == ModeBoard {
		groups, titles = GroupBoard(filtered), boardTitles
	}

	sections := make([]Section, 0, len(SectionOrder))
	for _, key := range SectionOrder {
		sections = append(sections, Section{
			Key:       key,
			Title:     titles[key],
			Count:     len(groups[key]),
			Collapsed: req.Collapsed[key],
			Tasks:     groups[key],
		})
	}

	return Projection{
		Mode:     mode,
		User:     session.Identity(),
		Total:    len(tasks),
		Matched:  len(filtered),
		Empty:    len(filtered) == 0,
		Sections: sections,
	}
}
