package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	latin := NewCharSet('a', 'b', 'c')
	lang, err := NewLangSet("en", "ja")
	if err != nil {
		t.Fatalf("NewLangSet() error = %v", err)
	}
	langAgain, _ := NewLangSet("ja", "en")

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"integer vs real promote", Int(200), Real(200), true},
		{"integer mismatch", Int(200), Int(80), false},
		{"text case insensitive", Text("DejaVu Sans"), Text("dejavu sans"), true},
		{"text vs integer", Text("200"), Int(200), false},
		{"bool", Bool(true), Bool(true), true},
		{"matrix", MatrixOf(Identity()), MatrixOf(&Matrix{XX: 1, YY: 1}), true},
		{"charset equal", CharSetOf(latin), CharSetOf(NewCharSet('c', 'b', 'a')), true},
		{"charset subset is not equal", CharSetOf(NewCharSet('a')), CharSetOf(latin), false},
		{"langset order independent", LangSetOf(lang), LangSetOf(langAgain), true},
		{"range", RangeOf(NewRange(1, 2)), RangeOf(&Range{From: 1, To: 2}), true},
		{"void equals void", Void(), Void(), true},
		{"unknown never equal", Unknown(), Unknown(), false},
		{"face identity", Face(latin), Face(latin), true},
		{"face distinct", Face(latin), Face(NewCharSet('a', 'b', 'c')), false},
		{"face uncomparable", Face([]int{1}), Face([]int{1}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestCharSet_IsSubsetOf(t *testing.T) {
	all := CharSetFromString("abcあ")
	assert.True(t, CharSetFromString("aあ").IsSubsetOf(all))
	assert.False(t, CharSetFromString("az").IsSubsetOf(all))
	assert.True(t, NewCharSet().IsSubsetOf(all))
	assert.Equal(t, []rune{'a', 'b', 'c', 'あ'}, all.Runes())
}

func TestRange(t *testing.T) {
	r := NewRange(12, 8)
	assert.Equal(t, 8.0, r.From, "endpoints are normalised")
	assert.True(t, r.Contains(8))
	assert.True(t, r.Contains(12))
	assert.False(t, r.Contains(12.5))
	assert.True(t, NewRange(9, 10).IsSubsetOf(r))
	assert.False(t, NewRange(7, 10).IsSubsetOf(r))
}

func TestParseCodepoint(t *testing.T) {
	r, err := ParseCodepoint("あ")
	assert.NoError(t, err)
	assert.Equal(t, rune(0x3042), r)

	r, err = ParseCodepoint("u+3042")
	assert.NoError(t, err)
	assert.Equal(t, rune(0x3042), r)

	_, err = ParseCodepoint("ab")
	assert.Error(t, err)
}
