package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/jsrefactor/internal/buffer"
	"github.com/bethropolis/jsrefactor/internal/types"
)

func TestResolveSelection(t *testing.T) {
	buf := buffer.New([]byte("ab\ncdé\nf"))

	tests := []struct {
		name    string
		offset  int
		at      string
		sel     string
		want    types.Selection
		wantErr bool
	}{
		{name: "default", want: types.Cursor(0)},
		{name: "offset", offset: 4, want: types.Cursor(4)},
		{name: "line and column", at: "2:3", want: types.Cursor(5)},
		{name: "column past multibyte rune", at: "3:1", want: types.Cursor(8)},
		{name: "selection", sel: "3:6", want: types.Selection{Anchor: 3, Head: 6}},
		{name: "offset past end", offset: 40, wantErr: true},
		{name: "line zero", at: "0:1", wantErr: true},
		{name: "line past end", at: "9:1", wantErr: true},
		{name: "reversed selection", sel: "5:2", wantErr: true},
		{name: "malformed", sel: "5-2", wantErr: true},
		{name: "not a number", at: "a:1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveSelection(buf, tt.offset, tt.at, tt.sel)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
