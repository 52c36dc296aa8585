package utils

import "testing"

func TestDedent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "common space prefix",
			input: "    #!/bin/bash\n    #SBATCH --nodes 1",
			want:  "#!/bin/bash\n#SBATCH --nodes 1",
		},
		{
			name:  "common tab prefix",
			input: "\t\tline one\n\t\tline two",
			want:  "line one\nline two",
		},
		{
			name:  "blank lines ignored for margin",
			input: "    a\n\n    b",
			want:  "a\n\nb",
		},
		{
			name:  "whitespace-only lines normalized",
			input: "    a\n        \n    b",
			want:  "a\n\nb",
		},
		{
			name:  "mixed indent keeps shorter margin",
			input: "    a\n        b",
			want:  "a\n    b",
		},
		{
			name:  "no common prefix",
			input: "a\n    b",
			want:  "a\n    b",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "trailing newline preserved",
			input: "    a\n    b\n",
			want:  "a\nb\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dedent(tt.input); got != tt.want {
				t.Errorf("Dedent(%q) = %q; want %q", tt.input, got, tt.want)
			}
		})
	}
}
