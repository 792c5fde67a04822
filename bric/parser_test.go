package bric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasicObject(t *testing.T) {
	v, err := Parse(`{"a": 1, "b": [true, false, null], "c": "x"}`, Strictest())
	require.NoError(t, err)
	obj, ok := v.AsObj()
	require.True(t, ok)
	a, _ := obj.Get("a")
	n, _ := a.AsNum()
	assert.Equal(t, float64(1), n)
}

func TestParseStrictRejectsDuplicateKeys(t *testing.T) {
	_, err := Parse(`{"a":1,"a":2}`, Strictest())
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, DuplicateKey, pe.Kind)
}

func TestParsePermissiveLastWriterWins(t *testing.T) {
	v, err := Parse(`{"a":1,"a":2}`, Permissive())
	require.NoError(t, err)
	obj, _ := v.AsObj()
	a, _ := obj.Get("a")
	n, _ := a.AsNum()
	assert.Equal(t, float64(2), n)
}

func TestParseStrictRejectsComments(t *testing.T) {
	_, err := Parse(`{"a":1 /* nope */}`, Strictest())
	require.Error(t, err)
}

func TestParseAllowComments(t *testing.T) {
	v, err := Parse("{\n// leading\n\"a\":1 /* trailing */\n}", Permissive())
	require.NoError(t, err)
	obj, _ := v.AsObj()
	_, ok := obj.Get("a")
	assert.True(t, ok)
}

func TestParseAllowTrailingCommas(t *testing.T) {
	v, err := Parse(`[1,2,3,]`, Permissive())
	require.NoError(t, err)
	arr, _ := v.AsArr()
	assert.Len(t, arr, 3)
}

func TestParseStrictRejectsTrailingComma(t *testing.T) {
	_, err := Parse(`[1,2,3,]`, Strictest())
	require.Error(t, err)
}

func TestParseAllowUnquotedKeys(t *testing.T) {
	v, err := Parse(`{a: 1, b_2: 2}`, Permissive())
	require.NoError(t, err)
	obj, _ := v.AsObj()
	_, ok := obj.Get("a")
	assert.True(t, ok)
}

func TestParseAllowNaNInfinity(t *testing.T) {
	v, err := Parse(`[NaN, Infinity, -Infinity]`, Permissive())
	require.NoError(t, err)
	arr, _ := v.AsArr()
	require.Len(t, arr, 3)
	n1, _ := arr[1].AsNum()
	assert.True(t, n1 > 0)
}

func TestParseTrailingGarbage(t *testing.T) {
	_, err := Parse(`1 2`, Strictest())
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, TrailingGarbage, pe.Kind)
}

func TestParseDepthExceeded(t *testing.T) {
	deep := ""
	for i := 0; i < 5; i++ {
		deep += "["
	}
	for i := 0; i < 5; i++ {
		deep += "]"
	}
	opts := Strictest()
	opts.MaxDepth = 2
	_, err := Parse(deep, opts)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, DepthExceeded, pe.Kind)
}

func TestParseUnterminatedString(t *testing.T) {
	_, err := Parse(`"abc`, Strictest())
	require.Error(t, err)
}

func TestParseInvalidEscape(t *testing.T) {
	_, err := Parse(`"\q"`, Strictest())
	require.Error(t, err)
}

func TestParseUnicodeEscapeSurrogatePair(t *testing.T) {
	v, err := Parse(`"\`+`ud83d\`+`ude00"`, Strictest())
	require.NoError(t, err)
	s, _ := v.AsStr()
	assert.Equal(t, "😀", s)
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse("   ", Strictest())
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestParseWithCustomBricolage(t *testing.T) {
	v, err := ParseWith[int](`[1,2,3]`, Strictest(), countingBricolage{})
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

// countingBricolage ignores values and just counts array elements, to
// exercise ParseWith against a non-Bric representation per spec.md §4.B.
type countingBricolage struct{}

func (countingBricolage) CreateNull() int               { return 0 }
func (countingBricolage) CreateTrue() int                { return 0 }
func (countingBricolage) CreateFalse() int               { return 0 }
func (countingBricolage) CreateString(s string) int      { return 0 }
func (countingBricolage) CreateNumber(text string) (int, error) { return 0, nil }
func (countingBricolage) CreateArray() int               { return 0 }
func (countingBricolage) CreateObject() int              { return 0 }
func (countingBricolage) PutElement(arr int, elem int) int {
	return arr + 1
}
func (countingBricolage) PutKeyValue(obj int, key string, val int) int {
	return obj + 1
}
