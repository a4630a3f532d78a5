package inputval

import "testing"

func TestValidateRequired(t *testing.T) {
	type input struct {
		Name string `validate:"required,max=200" label:"Name"`
		Note string `validate:"max=10" label:"Note"`
	}

	tests := []struct {
		name    string
		in      input
		wantErr bool
	}{
		{"valid", input{Name: "VMC-02", Note: "ok"}, false},
		{"missing required", input{Name: "", Note: "ok"}, true},
		{"whitespace only counts as missing", input{Name: "   "}, true},
		{"over max", input{Name: "x", Note: "this note is too long"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.in)
			if res.HasErrors() != tt.wantErr {
				t.Errorf("HasErrors() = %v, want %v (errors: %v)", res.HasErrors(), tt.wantErr, res.Errors)
			}
		})
	}
}

func TestValidateUsesLabel(t *testing.T) {
	type input struct {
		Code string `validate:"required" label:"Machine code"`
	}

	res := Validate(input{})
	if msg, ok := res.Errors["Machine code"]; !ok || msg != "Machine code is required" {
		t.Errorf("Errors = %v", res.Errors)
	}
	if res.First() == "" {
		t.Error("First() should return a message")
	}
}

func TestValidateAcceptsPointer(t *testing.T) {
	type input struct {
		Name string `validate:"required"`
	}
	if res := Validate(&input{Name: "ok"}); res.HasErrors() {
		t.Errorf("unexpected errors: %v", res.Errors)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain remark", "plain remark"},
		{"  padded  ", "padded"},
		{"<script>alert(1)</script>fixture prep", "fixture prep"},
		{"<b>bold</b> claim", "bold claim"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
