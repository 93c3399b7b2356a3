package models

// MergeUserData returns a shallow copy of current overlaid with every key of
// overlay whose value is not nil. Overlay values win on conflict; neither
// input is modified.
func MergeUserData(current, overlay map[string]any) map[string]any {
	merged := make(map[string]any, len(current)+len(overlay))
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range overlay {
		if v == nil {
			continue
		}
		merged[k] = v
	}
	return merged
}
