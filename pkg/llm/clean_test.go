package llm

import "testing"

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain json untouched",
			raw:  `{"answer_directly": true}`,
			want: `{"answer_directly": true}`,
		},
		{
			name: "json fence",
			raw:  "```json\n{\"ok\": 1}\n```",
			want: `{"ok": 1}`,
		},
		{
			name: "bare fence",
			raw:  "```\n{\"ok\": 1}\n```",
			want: `{"ok": 1}`,
		},
		{
			name: "surrounding whitespace",
			raw:  "  \n {\"ok\": 1} \n ",
			want: `{"ok": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(CleanJSONResponse(tt.raw)); got != tt.want {
				t.Errorf("CleanJSONResponse(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
