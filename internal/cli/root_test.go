package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseBuildArgs(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    map[string]string
		wantErr bool
	}{
		{
			name:  "empty",
			pairs: nil,
			want:  nil,
		},
		{
			name:  "pairs",
			pairs: []string{"VERSION=1.0", "ARCH=amd64"},
			want:  map[string]string{"VERSION": "1.0", "ARCH": "amd64"},
		},
		{
			name:  "empty value",
			pairs: []string{"FLAG="},
			want:  map[string]string{"FLAG": ""},
		},
		{
			name:  "value containing equals",
			pairs: []string{"OPTS=-a=b"},
			want:  map[string]string{"OPTS": "-a=b"},
		},
		{
			name:    "missing equals",
			pairs:   []string{"VERSION"},
			wantErr: true,
		},
		{
			name:    "empty key",
			pairs:   []string{"=value"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseBuildArgs(tt.pairs)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseBuildArgs(%v): expected error", tt.pairs)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseBuildArgs(%v): %v", tt.pairs, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseBuildArgs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
