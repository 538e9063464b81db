package sqlconn

import "testing"

func TestSQLValueToDBRowValue(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
		null bool
	}{
		{"nil", nil, "", true},
		{"int64", int64(42), "42", false},
		{"float64", float64(3.5), "3.5", false},
		{"bool", true, "true", false},
		{"bytes", []byte("hi"), "hi", false},
		{"string", "hi", "hi", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sqlValueToDBRowValue(tt.in)
			if got.IsNull() != tt.null {
				t.Errorf("IsNull() = %v, want %v", got.IsNull(), tt.null)
			}
			if !tt.null && got.String() != tt.want {
				t.Errorf("String() = %q, want %q", got.String(), tt.want)
			}
		})
	}
}
