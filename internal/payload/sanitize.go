package payload

// Sanitize strips map keys whose value is nil, recursively. The document
// store rejects writes containing absent-value sentinels, so every outbound
// payload passes through here first. Arrays are sanitized element-wise
// without reordering; primitive values pass through unchanged.
func Sanitize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			if val == nil {
				continue
			}
			out[k] = Sanitize(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(t))
		for _, val := range t {
			out = append(out, Sanitize(val))
		}
		return out
	default:
		return v
	}
}

// Merge shallow-merges src onto dst and returns dst. Keys present in src
// overwrite the corresponding keys in dst; dst is created when nil.
func Merge(dst, src map[string]interface{}) map[string]interface{} {
	if dst == nil {
		dst = make(map[string]interface{}, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
