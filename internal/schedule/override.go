package schedule

// Override is a sparse per-occurrence patch to a definition's display
// fields. Nil fields mean "no override"; each set field replaces the base
// value for that day's occurrence only. The explicit optional-field shape
// keeps a default value (empty title, color zero) from being mistaken for
// an override.
type Override struct {
	Title    *string   `json:"title,omitempty"`
	Color    *int      `json:"color,omitempty"`
	Priority *int      `json:"priority,omitempty"`
	GroupID  *int      `json:"groupId,omitempty"`
	Subtasks []Subtask `json:"subtasks,omitempty"`
}

// Clone returns a deep copy of the patch.
func (o *Override) Clone() *Override {
	if o == nil {
		return nil
	}
	out := &Override{
		Title:    cloneStringPtr(o.Title),
		Color:    cloneIntPtr(o.Color),
		Priority: cloneIntPtr(o.Priority),
		GroupID:  cloneIntPtr(o.GroupID),
	}
	if o.Subtasks != nil {
		out.Subtasks = make([]Subtask, 0, len(o.Subtasks))
		for _, sub := range o.Subtasks {
			out.Subtasks = append(out.Subtasks, sub.Clone())
		}
	}
	return out
}

// Apply overlays the patch onto a definition copy, field by field.
func (o *Override) Apply(def *Definition) {
	if o == nil || def == nil {
		return
	}
	if o.Title != nil {
		def.Title = *o.Title
	}
	if o.Color != nil {
		def.Color = *o.Color
	}
	if o.Priority != nil {
		def.Priority = *o.Priority
	}
	if o.GroupID != nil {
		def.GroupID = *o.GroupID
	}
	if len(o.Subtasks) > 0 {
		def.Subtasks = make([]Subtask, 0, len(o.Subtasks))
		for _, sub := range o.Subtasks {
			def.Subtasks = append(def.Subtasks, sub.Clone())
		}
	}
}

// DiffOverride captures the display fields where edited differs from base.
// It returns nil when nothing differs.
func DiffOverride(base, edited Definition) *Override {
	patch := &Override{}
	changed := false

	if edited.Title != base.Title {
		title := edited.Title
		patch.Title = &title
		changed = true
	}
	if edited.Color != base.Color {
		color := edited.Color
		patch.Color = &color
		changed = true
	}
	if edited.Priority != base.Priority {
		priority := edited.Priority
		patch.Priority = &priority
		changed = true
	}
	if edited.GroupID != base.GroupID {
		groupID := edited.GroupID
		patch.GroupID = &groupID
		changed = true
	}
	if !subtasksEqual(base.Subtasks, edited.Subtasks) {
		patch.Subtasks = make([]Subtask, 0, len(edited.Subtasks))
		for _, sub := range edited.Subtasks {
			patch.Subtasks = append(patch.Subtasks, sub.Clone())
		}
		changed = true
	}

	if !changed {
		return nil
	}
	return patch
}

// OverrideOf captures every non-empty display field of a definition. It is
// the fallback when no base definition exists to diff against.
func OverrideOf(def Definition) *Override {
	patch := &Override{}
	changed := false

	if def.Title != "" {
		title := def.Title
		patch.Title = &title
		changed = true
	}
	if def.Color != 0 {
		color := def.Color
		patch.Color = &color
		changed = true
	}
	if def.Priority != 0 {
		priority := def.Priority
		patch.Priority = &priority
		changed = true
	}
	if def.GroupID != 0 {
		groupID := def.GroupID
		patch.GroupID = &groupID
		changed = true
	}
	if len(def.Subtasks) > 0 {
		patch.Subtasks = make([]Subtask, 0, len(def.Subtasks))
		for _, sub := range def.Subtasks {
			patch.Subtasks = append(patch.Subtasks, sub.Clone())
		}
		changed = true
	}

	if !changed {
		return nil
	}
	return patch
}

func subtasksEqual(a, b []Subtask) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Name != b[i].Name || a[i].Order != b[i].Order || a[i].Score != b[i].Score {
			return false
		}
		if len(a[i].ImgIDs) != len(b[i].ImgIDs) {
			return false
		}
		for j := range a[i].ImgIDs {
			if a[i].ImgIDs[j] != b[i].ImgIDs[j] {
				return false
			}
		}
	}
	return true
}

func cloneIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	clone := *v
	return &clone
}

func cloneStringPtr(v *string) *string {
	if v == nil {
		return nil
	}
	clone := *v
	return &clone
}
