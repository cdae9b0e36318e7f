// Package text holds string helpers used when rendering and storing content.
package text

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

func EncodeToBase64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func DecodeFromBase64(s string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// MD5 returns the lower-case hex digest of s.
func MD5(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// MD5Verify compares the digest of s with hash, ignoring case.
func MD5Verify(s, hash string) bool {
	return strings.EqualFold(MD5(s), hash)
}

func HTMLEncode(s string) string {
	return html.EscapeString(s)
}

func HTMLDecode(s string) string {
	return html.UnescapeString(s)
}

// StripTags returns the text content of an HTML fragment. Script and style
// bodies are dropped and entities are decoded.
func StripTags(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var sb strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a malformed tail; either way the text so far is the result
			return sb.String()
		case html.StartTagToken:
			if name, _ := z.TagName(); isRawTextTag(name) {
				skip++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); isRawTextTag(name) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				sb.Write(z.Text())
			}
		}
	}
}

func isRawTextTag(name []byte) bool {
	n := string(name)
	return n == "script" || n == "style"
}

var shortWords = map[string]bool{"a": true, "is": true, "was": true, "the": true}

// TitleCase capitalises every space separated word. With ignoreShortWords,
// articles and auxiliaries after the first word are left as written.
func TitleCase(s string, ignoreShortWords bool) string {
	caser := cases.Title(language.English)
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		if ignoreShortWords && i > 0 && shortWords[strings.ToLower(w)] {
			continue
		}
		words[i] = caser.String(w)
	}
	return strings.TrimSpace(strings.Join(words, " "))
}

// SentenceCase lower-cases s and upper-cases its first letter.
func SentenceCase(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	r, size := utf8.DecodeRuneInString(lower)
	return string(unicode.ToUpper(r)) + lower[size:]
}

// RemoveNewLines drops CR and LF characters, or turns each into a space.
func RemoveNewLines(s string, addSpace bool) string {
	repl := ""
	if addSpace {
		repl = " "
	}
	return strings.NewReplacer("\r", repl, "\n", repl).Replace(s)
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	newLineRun    = regexp.MustCompile(`[\r\n]+`)
)

// TrimIntraWords collapses runs of whitespace into one space.
func TrimIntraWords(s string) string {
	return whitespaceRun.ReplaceAllString(s, " ")
}

func NewLineToBreak(s string) string {
	return newLineRun.ReplaceAllString(s, "<br />")
}

func Reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// WordWrap inserts breakText so lines stay near width characters. With cutOff
// the text is chopped every width runes regardless of words.
func WordWrap(s string, width int, cutOff bool, breakText string) string {
	if width <= 0 {
		return s
	}
	var sb strings.Builder
	if cutOff {
		r := []rune(s)
		for start := 0; start < len(r); start += width {
			if start+width < len(r) {
				sb.WriteString(string(r[start : start+width]))
				sb.WriteString(breakText)
			} else {
				sb.WriteString(string(r[start:]))
			}
		}
		return sb.String()
	}

	var lines, line []string
	lineLen := 0
	for _, w := range strings.Split(s, " ") {
		wl := utf8.RuneCountInString(w)
		if len(line) > 0 && lineLen+1+wl > width {
			lines = append(lines, strings.Join(line, " "))
			line, lineLen = nil, 0
		}
		if len(line) > 0 {
			lineLen++
		}
		line = append(line, w)
		lineLen += wl
	}
	lines = append(lines, strings.Join(line, " "))
	return strings.Join(lines, breakText)
}

// SplitAndTrim splits on sep, trims each part and drops empty ones.
func SplitAndTrim(s string, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Slugify turns a title into a lower-case, dash separated URL segment.
func Slugify(s string) string {
	// chained transformers keep state, so one is built per call
	accents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(accents, s)
	if err != nil {
		plain = s
	}
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(plain) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(sb.String(), "-")
}

// FilterWords replaces every case-insensitive occurrence of each word with
// mask repeated once per character. A zero mask removes the word.
func FilterWords(s string, mask rune, words ...string) string {
	for _, w := range words {
		if w == "" {
			continue
		}
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(w))
		repl := ""
		if mask != 0 {
			repl = strings.Repeat(string(mask), utf8.RuneCountInString(w))
		}
		s = re.ReplaceAllLiteralString(s, repl)
	}
	return s
}

// StripNonValidXMLCharacters drops runes outside the XML 1.0 Char range.
func StripNonValidXMLCharacters(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == 0x9, r == 0xA, r == 0xD,
			r >= 0x20 && r <= 0xD7FF,
			r >= 0xE000 && r <= 0xFFFD,
			r >= 0x10000 && r <= 0x10FFFF:
			return r
		}
		return -1
	}, s)
}
