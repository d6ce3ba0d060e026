package utils

import "testing"

func TestMergeLabel(t *testing.T) {
	tests := []struct {
		name     string
		existing Label
		incoming Label
		want     Label
	}{
		{
			name:     "both present",
			existing: Label{Value: "a", Source: "x"},
			incoming: Label{Value: "b", Source: "y"},
			want:     Label{Value: "a|b", Source: "x,y"},
		},
		{
			name:     "empty existing",
			existing: Label{},
			incoming: Label{Value: "b", Source: "y"},
			want:     Label{Value: "b", Source: "y"},
		},
		{
			name:     "empty incoming",
			existing: Label{Value: "a", Source: "x"},
			incoming: Label{},
			want:     Label{Value: "a", Source: "x"},
		},
		{
			name:     "incoming without source",
			existing: Label{Value: "a", Source: "x"},
			incoming: Label{Value: "b"},
			want:     Label{Value: "a|b", Source: "x"},
		},
	}
	for _, tt := range tests {
		if got := MergeLabel(tt.existing, tt.incoming); got != tt.want {
			t.Errorf("%s: MergeLabel = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}
