package tmpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    string
		data    any
		want    string
		wantErr bool
	}{
		{
			name: "default export",
			tmpl: DefaultExport,
			data: Export{Name: "lang", Var: "LANG", Value: "en"},
			want: "LANG='en'",
		},
		{
			name: "custom export",
			tmpl: "export {{ .Var }}={{ .Value | shq }}",
			data: Export{Name: "ports", Var: "PORTS", Value: "[80,443]"},
			want: "export PORTS='[80,443]'",
		},
		{
			name: "var and upper functions",
			tmpl: "{{ var .Name }} {{ upper .Name }}",
			data: Export{Name: "db-host"},
			want: "DB_HOST DB-HOST",
		},
		{
			name: "no variables",
			tmpl: "static string",
			data: nil,
			want: "static string",
		},
		{
			name:    "missing key errors",
			tmpl:    "{{ .Missing }}",
			data:    map[string]string{"Name": "test"},
			wantErr: true,
		},
		{
			name:    "unknown field errors",
			tmpl:    "{{ .Missing }}",
			data:    Export{},
			wantErr: true,
		},
		{
			name:    "invalid template syntax",
			tmpl:    "{{ .Name }",
			data:    Export{Name: "test"},
			wantErr: true,
		},
		{
			name: "shq with single quotes",
			tmpl: "{{ .Value | shq }}",
			data: Export{Value: "it's a test"},
			want: `'it'\''s a test'`,
		},
		{
			name: "shq with empty string",
			tmpl: "{{ .Value | shq }}",
			data: Export{Value: ""},
			want: "''",
		},
		{
			name: "shq with special chars",
			tmpl: "{{ .Value | shq }}",
			data: Export{Value: "$(whoami) && rm -rf /"},
			want: "'$(whoami) && rm -rf /'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.tmpl, tt.data)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVarName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"lang", "LANG"},
		{"db-host", "DB_HOST"},
		{"my.answer", "MY_ANSWER"},
		{"2fa", "_2FA"},
		{"a1_b", "A1_B"},
		{"café", "CAF_"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, VarName(tt.in))
		})
	}
}
