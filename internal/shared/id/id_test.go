package id

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		alphabet string
		length   int
		wantErr  bool
	}{
		{"code", AlphabetCode, 8, false},
		{"base36", AlphabetBase36, 6, false},
		{"zero length", AlphabetCode, 0, true},
		{"tiny alphabet", "A", 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.alphabet, tt.length)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.length)
			for _, r := range got {
				assert.True(t, strings.ContainsRune(tt.alphabet, r), "unexpected rune %q", r)
			}
		})
	}
}

func TestNewNumeric(t *testing.T) {
	for i := 0; i < 50; i++ {
		got, err := NewNumeric(8)
		require.NoError(t, err)
		assert.Len(t, got, 8)
		assert.NotEqual(t, byte('0'), got[0])
	}

	single, err := NewNumeric(1)
	require.NoError(t, err)
	assert.Len(t, single, 1)
}

func TestNewCode_IsUpperAlphanumeric(t *testing.T) {
	got, err := NewCode(8)
	require.NoError(t, err)
	assert.Equal(t, strings.ToUpper(got), got)
}

func TestGenerateUnique(t *testing.T) {
	ctx := context.Background()
	tokens := []string{"AAA", "BBB", "CCC"}
	calls := 0
	next := func() (string, error) {
		tok := tokens[calls]
		calls++
		return tok, nil
	}
	taken := func(_ context.Context, tok string) (bool, error) {
		return tok != "CCC", nil
	}

	got, err := GenerateUnique(ctx, 5, next, taken)
	require.NoError(t, err)
	assert.Equal(t, "CCC", got)
	assert.Equal(t, 3, calls)
}

func TestGenerateUnique_Exhausted(t *testing.T) {
	calls := 0
	_, err := GenerateUnique(context.Background(), 4,
		func() (string, error) { calls++; return "SAME", nil },
		func(context.Context, string) (bool, error) { return true, nil },
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSpaceExhausted))
	assert.Equal(t, 4, calls)
}

func TestGenerateUnique_PropagatesLookupError(t *testing.T) {
	boom := errors.New("db down")
	_, err := GenerateUnique(context.Background(), 0,
		func() (string, error) { return "X", nil },
		func(context.Context, string) (bool, error) { return false, boom },
	)
	assert.ErrorIs(t, err, boom)
}
