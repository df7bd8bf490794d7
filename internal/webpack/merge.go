package webpack

// Merge returns base deep-merged with override. Neither input is modified.
//
//   - keys present in only one side are copied;
//   - when both values are objects, they are merged recursively;
//   - when both values are arrays, override's elements are appended to base's;
//   - otherwise the override value replaces the base value.
func Merge(base, override Object) Object {
	out := make(Object, len(base)+len(override))
	for k, v := range base {
		out[k] = clone(v)
	}
	for k, ov := range override {
		bv, ok := out[k]
		if !ok {
			out[k] = clone(ov)
			continue
		}
		out[k] = mergeValue(bv, ov)
	}
	return out
}

func mergeValue(base, override any) any {
	if bo, ok := asObject(base); ok {
		if oo, ok := asObject(override); ok {
			return Merge(bo, oo)
		}
	}
	if ba, ok := base.([]any); ok {
		if oa, ok := override.([]any); ok {
			out := make([]any, 0, len(ba)+len(oa))
			out = append(out, ba...)
			for _, v := range oa {
				out = append(out, clone(v))
			}
			return out
		}
	}
	return clone(override)
}

func asObject(v any) (Object, bool) {
	switch o := v.(type) {
	case Object:
		return o, true
	case map[string]any:
		return Object(o), true
	}
	return nil, false
}

// clone copies objects and arrays so merged results never alias inputs.
func clone(v any) any {
	if o, ok := asObject(v); ok {
		out := make(Object, len(o))
		for k, val := range o {
			out[k] = clone(val)
		}
		return out
	}
	if a, ok := v.([]any); ok {
		out := make([]any, len(a))
		for i, val := range a {
			out[i] = clone(val)
		}
		return out
	}
	return v
}
