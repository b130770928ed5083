package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractOTP(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		want  string
		found bool
	}{
		{
			name:  "marker with glued trailing text",
			body:  "Your code is FB-20129Don't share it",
			want:  "20129",
			found: true,
		},
		{
			name:  "marker with en dash",
			body:  "FB–48210 is your Facebook confirmation code",
			want:  "48210",
			found: true,
		},
		{
			name:  "marker with whitespace filler",
			body:  "FB- 55512",
			want:  "55512",
			found: true,
		},
		{
			name:  "marker lowercase",
			body:  "fb-73920 expires in 10 minutes",
			want:  "73920",
			found: true,
		},
		{
			name:  "fallback standalone digit run",
			body:  "Your code is 482913, expires soon",
			want:  "482913",
			found: true,
		},
		{
			name:  "marker preferred over earlier digit run",
			body:  "ticket 99999 then FB-12345",
			want:  "12345",
			found: true,
		},
		{
			name:  "no numbers",
			body:  "no numbers here",
			want:  "",
			found: false,
		},
		{
			name:  "run too short",
			body:  "your pin is 1234",
			want:  "",
			found: false,
		},
		{
			name:  "run too long is not standalone",
			body:  "order ref 1234567890",
			want:  "",
			found: false,
		},
		{
			name:  "empty body",
			body:  "",
			want:  "",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractOTP(tt.body)
			require.Equal(t, tt.found, found)
			require.Equal(t, tt.want, got)
		})
	}
}
