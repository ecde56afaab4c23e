package schedule

// Clone returns a deep copy of the subtask.
func (s Subtask) Clone() Subtask {
	out := s
	out.ImgIDs = append([]string(nil), s.ImgIDs...)
	return out
}

// Clone returns a deep copy of the definition, including subtasks and the
// custom weekday set. Materialized occurrences and dialog edits always work
// on clones so the canonical list is never aliased.
func (d Definition) Clone() Definition {
	out := d
	out.RepeatData = append([]int(nil), d.RepeatData...)
	if d.Subtasks != nil {
		out.Subtasks = make([]Subtask, 0, len(d.Subtasks))
		for _, sub := range d.Subtasks {
			out.Subtasks = append(out.Subtasks, sub.Clone())
		}
	}
	return out
}

// Clone returns a deep copy of the save record.
func (s *Save) Clone() *Save {
	if s == nil {
		return nil
	}
	out := &Save{State: s.State, Score: s.Score}
	if s.Subtasks != nil {
		out.Subtasks = make(map[int]int, len(s.Subtasks))
		for id, state := range s.Subtasks {
			out.Subtasks[id] = state
		}
	}
	out.Override = s.Override.Clone()
	return out
}

// CloneSaveDay deep-copies one day's slice of the save map.
func CloneSaveDay(day map[int]*Save) map[int]*Save {
	if day == nil {
		return nil
	}
	out := make(map[int]*Save, len(day))
	for id, rec := range day {
		out[id] = rec.Clone()
	}
	return out
}

// Clone returns a deep copy of the whole aggregate.
func (u *UserData) Clone() *UserData {
	if u == nil {
		return nil
	}
	out := &UserData{ID: u.ID, Name: u.Name, UserID: u.UserID}
	if u.Schedules != nil {
		out.Schedules = make([]Definition, 0, len(u.Schedules))
		for _, def := range u.Schedules {
			out.Schedules = append(out.Schedules, def.Clone())
		}
	}
	if u.Save != nil {
		out.Save = make(map[string]map[int]*Save, len(u.Save))
		for key, day := range u.Save {
			out.Save[key] = CloneSaveDay(day)
		}
	}
	return out
}

// Clone returns a deep copy of the day view.
func (d DayData) Clone() DayData {
	out := DayData{Date: d.Date, Save: CloneSaveDay(d.Save)}
	if d.Events != nil {
		out.Events = make([]Definition, 0, len(d.Events))
		for _, event := range d.Events {
			out.Events = append(out.Events, event.Clone())
		}
	}
	return out
}
