package handlers

import "testing"

func TestParseIDList(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []int
		wantErr bool
	}{
		{"json array", "[1,2,3]", []int{1, 2, 3}, false},
		{"comma separated", "1,2,3", []int{1, 2, 3}, false},
		{"single id", "7", []int{7}, false},
		{"empty string", "", nil, false},
		{"null literal", "null", nil, false},
		{"whitespace around parts", " 1 , 2 ", []int{1, 2}, false},
		{"trailing comma", "1,2,", []int{1, 2}, false},
		{"bad json", "[1,x]", nil, true},
		{"bad number", "1,abc", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIDList(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}
