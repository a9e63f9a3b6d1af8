// Package style resolves display attributes for enumerated record fields from
// lookup tables with an explicit fallback entry.
package style

import "github.com/starford/techhub/internal/models"

// Style is the display treatment of one enum value.
type Style struct {
	Label    string `json:"label"`
	Color    string `json:"color"`
	Icon     string `json:"icon,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`
}

// Resolver maps enum values to styles. Values missing from the table resolve
// to the fallback entry.
type Resolver struct {
	order    []string
	entries  map[string]Style
	fallback string
}

// Entry is one row of a resolver table.
type Entry struct {
	Value string
	Style Style
}

// NewResolver builds a resolver. fallback must name one of the entries.
func NewResolver(fallback string, entries ...Entry) *Resolver {
	r := &Resolver{entries: make(map[string]Style, len(entries)), fallback: fallback}
	for _, e := range entries {
		r.order = append(r.order, e.Value)
		r.entries[e.Value] = e.Style
	}
	if _, ok := r.entries[fallback]; !ok {
		panic("style: fallback " + fallback + " is not a table entry")
	}
	return r
}

// Resolve returns the style for value.
func (r *Resolver) Resolve(value string) Style {
	if s, ok := r.entries[value]; ok {
		return s
	}
	s := r.entries[r.fallback]
	s.Fallback = true
	return s
}

// Values returns the table keys in declaration order.
func (r *Resolver) Values() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

var (
	Status = NewResolver(string(models.StatusOpen),
		Entry{string(models.StatusOpen), Style{Label: "待处理", Color: "yellow"}},
		Entry{string(models.StatusInProgress), Style{Label: "处理中", Color: "blue"}},
		Entry{string(models.StatusResolved), Style{Label: "已解决", Color: "green"}},
	)

	Priority = NewResolver(string(models.PriorityMedium),
		Entry{string(models.PriorityLow), Style{Label: "低", Color: "gray"}},
		Entry{string(models.PriorityMedium), Style{Label: "中", Color: "yellow"}},
		Entry{string(models.PriorityHigh), Style{Label: "高", Color: "red"}},
	)

	Importance = NewResolver(string(models.ImportanceNormal),
		Entry{string(models.ImportanceNormal), Style{Label: "普通", Color: "gray"}},
		Entry{string(models.ImportanceImportant), Style{Label: "重要", Color: "yellow"}},
		Entry{string(models.ImportanceCritical), Style{Label: "关键", Color: "red"}},
	)

	EventType = NewResolver(string(models.EventOther),
		Entry{string(models.EventRelease), Style{Label: "版本发布", Color: "blue", Icon: "🚀"}},
		Entry{string(models.EventMilestone), Style{Label: "里程碑", Color: "green", Icon: "🏆"}},
		Entry{string(models.EventMeeting), Style{Label: "会议", Color: "indigo", Icon: "📅"}},
		Entry{string(models.EventOther), Style{Label: "其他", Color: "gray", Icon: "📌"}},
	)

	// FileType has a dedicated gray fallback that is not itself a file type.
	FileType = NewResolver("",
		Entry{string(models.FileTypePDF), Style{Label: "PDF", Color: "blue", Icon: "📄"}},
		Entry{string(models.FileTypeWord), Style{Label: "Word", Color: "indigo", Icon: "📝"}},
		Entry{string(models.FileTypeExcel), Style{Label: "Excel", Color: "green", Icon: "📊"}},
		Entry{string(models.FileTypePPT), Style{Label: "PPT", Color: "orange", Icon: "📑"}},
		Entry{"", Style{Label: "文件", Color: "gray", Icon: "📁"}},
	)
)

// ForFacet returns the resolver for an enum facet name, or nil for open-ended
// facets such as tag and category.
func ForFacet(facet string) *Resolver {
	switch facet {
	case "status":
		return Status
	case "priority":
		return Priority
	case "importance":
		return Importance
	case "type":
		return EventType
	case "file_type":
		return FileType
	}
	return nil
}
