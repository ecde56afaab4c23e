package schedule

import (
	"encoding/json"
	"fmt"
)

// DecodeUserData parses a serialized user document. Legacy payloads may omit
// the schedules list, the save map or any definition's subtasks; those
// default to empty rather than failing.
func DecodeUserData(payload []byte) (*UserData, error) {
	data := &UserData{}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, data); err != nil {
			return nil, fmt.Errorf("schedule: decode user data: %w", err)
		}
	}
	normalize(data)
	return data, nil
}

// EncodeUserData serializes the aggregate for persistence.
func EncodeUserData(data *UserData) ([]byte, error) {
	if data == nil {
		data = &UserData{}
	}
	normalize(data)
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("schedule: encode user data: %w", err)
	}
	return payload, nil
}

func normalize(data *UserData) {
	if data.Schedules == nil {
		data.Schedules = make([]Definition, 0)
	}
	for i := range data.Schedules {
		if data.Schedules[i].Subtasks == nil {
			data.Schedules[i].Subtasks = make([]Subtask, 0)
		}
	}
	if data.Save == nil {
		data.Save = make(map[string]map[int]*Save)
	}
	for _, day := range data.Save {
		for _, rec := range day {
			if rec != nil && rec.Subtasks == nil {
				rec.Subtasks = make(map[int]int)
			}
		}
	}
}
