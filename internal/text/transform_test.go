package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase64(t *testing.T) {
	enc := EncodeToBase64("hello")
	assert.Equal(t, "aGVsbG8=", enc)

	dec, err := DecodeFromBase64(enc)
	require.NoError(t, err)
	assert.Equal(t, "hello", dec)

	_, err = DecodeFromBase64("%%%")
	assert.Error(t, err)
}

func TestMD5(t *testing.T) {
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", MD5("hello"))
	assert.True(t, MD5Verify("hello", "5D41402ABC4B2A76B9719D911017C592"))
	assert.False(t, MD5Verify("hello!", "5d41402abc4b2a76b9719d911017c592"))
}

func TestHTML(t *testing.T) {
	raw := `<a href="x">&'`
	enc := HTMLEncode(raw)
	assert.Equal(t, "&lt;a href=&#34;x&#34;&gt;&amp;&#39;", enc)
	assert.Equal(t, raw, HTMLDecode(enc))

	assert.Equal(t, "Hello world & bye",
		StripTags("<p>Hello <b>world</b></p><script>alert(1)</script> &amp; bye"))
	assert.Equal(t, "plain", StripTags("plain"))
}

func TestCasing(t *testing.T) {
	testCases := []struct {
		name string
		got  string

		want string
	}{
		{name: "title case keeps short words", got: TitleCase("the cat is on THE mat", true), want: "The Cat is On THE Mat"},
		{name: "title case every word", got: TitleCase("the cat is on THE mat", false), want: "The Cat Is On The Mat"},
		{name: "title case empty", got: TitleCase("", true), want: ""},
		{name: "sentence case", got: SentenceCase("hELLO World"), want: "Hello world"},
		{name: "sentence case unicode", got: SentenceCase("éCOLE"), want: "École"},
		{name: "sentence case empty", got: SentenceCase(""), want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.got)
		})
	}
}

func TestWhitespace(t *testing.T) {
	assert.Equal(t, "ab|c", RemoveNewLines("a\r\nb|c", false))
	assert.Equal(t, "a  b|c", RemoveNewLines("a\r\nb|c", true))
	assert.Equal(t, "a b", TrimIntraWords("a  \t b"))
	assert.Equal(t, "a<br />b", NewLineToBreak("a\r\nb"))
	assert.Equal(t, "olléh", Reverse("héllo"))
	assert.Equal(t, "abc", StripNonValidXMLCharacters("a\x00b\x1fc"))
}

func TestWordWrap(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		width  int
		cutOff bool

		want string
	}{
		{name: "words", input: "the quick brown fox", width: 10, want: "the quick\nbrown fox"},
		{name: "long word stays whole", input: "internationalisation rocks", width: 5, want: "internationalisation\nrocks"},
		{name: "cut off", input: "abcdefgh", width: 3, cutOff: true, want: "abc\ndef\ngh"},
		{name: "exact multiple", input: "abcdef", width: 3, cutOff: true, want: "abc\ndef"},
		{name: "no width", input: "abc", width: 0, want: "abc"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WordWrap(tc.input, tc.width, tc.cutOff, "\n"))
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitAndTrim(" a, ,b ,", ","))
	assert.Equal(t, []string{}, SplitAndTrim("", ","))
}

func TestSlugify(t *testing.T) {
	testCases := []struct {
		name  string
		input string

		want string
	}{
		{name: "accents and punctuation", input: "Héllo, World! 2025", want: "hello-world-2025"},
		{name: "surrounding noise", input: "  --Go  ", want: "go"},
		{name: "nothing usable", input: "!!!", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.input))
		})
	}
}

func TestFilterWords(t *testing.T) {
	assert.Equal(t, "**** it, ****", FilterWords("Darn it, DARN", '*', "darn"))
	assert.Equal(t, " it, ", FilterWords("Darn it, DARN", 0, "darn"))
	assert.Equal(t, "a.b", FilterWords("a.b", '#', "", "x.y"))
}
