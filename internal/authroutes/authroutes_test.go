package authroutes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		known      map[string]bool
		want       string
	}{
		{
			name:       "first candidate known",
			candidates: []string{"/signup", "/sign-up", "/register", "/auth/signup"},
			known:      map[string]bool{"/signup": true},
			want:       "/signup",
		},
		{
			name:       "later candidate known",
			candidates: []string{"/signup", "/sign-up", "/register"},
			known:      map[string]bool{"/register": true},
			want:       "/register",
		},
		{
			name:       "order decides when several are known",
			candidates: []string{"/signup", "/register"},
			known:      map[string]bool{"/register": true, "/signup": true},
			want:       "/signup",
		},
		{
			name:       "none known falls back to root",
			candidates: []string{"/signup", "/sign-up", "/register", "/auth/signup"},
			known:      map[string]bool{"/dashboard": true},
			want:       Fallback,
		},
		{
			name:       "empty known set",
			candidates: SignupCandidates,
			known:      map[string]bool{},
			want:       Fallback,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.candidates, tt.known))
		})
	}
}
