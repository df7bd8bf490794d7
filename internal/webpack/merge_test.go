package webpack

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		base     Object
		override Object
		want     Object
	}{
		{
			name:     "scalar override",
			base:     Object{"mode": "development", "devtool": false},
			override: Object{"devtool": "inline-source-map"},
			want:     Object{"mode": "development", "devtool": "inline-source-map"},
		},
		{
			name:     "objects recurse",
			base:     Object{"output": Object{"filename": "[name].js", "path": "/dist"}},
			override: Object{"output": Object{"path": "/out"}},
			want:     Object{"output": Object{"filename": "[name].js", "path": "/out"}},
		},
		{
			name:     "arrays concatenate",
			base:     Object{"plugins": []any{"clean", "extract"}},
			override: Object{"plugins": []any{"define"}},
			want:     Object{"plugins": []any{"clean", "extract", "define"}},
		},
		{
			name:     "plain maps count as objects",
			base:     Object{"resolve": map[string]any{"a": 1}},
			override: Object{"resolve": Object{"b": 2}},
			want:     Object{"resolve": Object{"a": 1, "b": 2}},
		},
		{
			name:     "type mismatch takes override",
			base:     Object{"target": []any{"web"}},
			override: Object{"target": "node"},
			want:     Object{"target": "node"},
		},
		{
			name:     "new keys added",
			base:     Object{},
			override: Object{"optimization": Object{"minimize": true}},
			want:     Object{"optimization": Object{"minimize": true}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.base, tt.override)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeDoesNotAlias(t *testing.T) {
	base := Object{"plugins": []any{"a"}, "output": Object{"path": "/dist"}}
	override := Object{"plugins": []any{"b"}}

	got := Merge(base, override)
	got["plugins"] = append(got["plugins"].([]any), "c")
	got["output"].(Object)["path"] = "/changed"

	if diff := cmp.Diff(Object{"plugins": []any{"a"}, "output": Object{"path": "/dist"}}, base); diff != "" {
		t.Errorf("base modified (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Object{"plugins": []any{"b"}}, override); diff != "" {
		t.Errorf("override modified (-want +got):\n%s", diff)
	}
}
