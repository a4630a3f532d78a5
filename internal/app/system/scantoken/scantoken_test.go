package scantoken

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		token string
		want  Kind
	}{
		// Work-order barcodes
		{"WO-12345", Barcode},
		{"WO-", Barcode}, // prefix alone still classifies as a barcode token
		{"WO-2024-0042", Barcode},

		// Operator badge IDs (24 hex, case-insensitive)
		{"64b7f0a1c2d3e4f5a6b7c8d9", OperatorID},
		{"64B7F0A1C2D3E4F5A6B7C8D9", OperatorID},
		{"aaaaaaaaaaaaaaaaaaaaaaaa", OperatorID},

		// Invalid
		{"", Invalid},
		{"wo-12345", Invalid},                   // prefix is case-sensitive
		{"64b7f0a1c2d3e4f5a6b7c8d", Invalid},    // 23 chars
		{"64b7f0a1c2d3e4f5a6b7c8d9a", Invalid},  // 25 chars
		{"64b7f0a1c2d3e4f5a6b7c8zz", Invalid},   // non-hex
		{"64b7f0a1 c2d3e4f5a6b7c8d", Invalid},   // embedded space
		{"operator-badge", Invalid},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := Classify(tt.token); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if got := Barcode.String(); got != "barcode" {
		t.Errorf("Barcode.String() = %q", got)
	}
	if got := OperatorID.String(); got != "operator" {
		t.Errorf("OperatorID.String() = %q", got)
	}
	if got := Invalid.String(); got != "invalid" {
		t.Errorf("Invalid.String() = %q", got)
	}
}
