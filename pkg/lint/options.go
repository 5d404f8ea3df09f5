package lint

// OptionMap returns the object option at the head of a rule's raw options,
// as written in `[error, {var: never}]`.
func OptionMap(raw []any) (map[string]any, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	switch m := raw[0].(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = v
		}
		return out, true
	default:
		return nil, false
	}
}
