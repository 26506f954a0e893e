package templates

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitution_ReplacesEveryOccurrence(t *testing.T) {
	tpl := "<title>{{ title }}</title><h1>{{ title }}</h1>{{ content }}<p>{{ published_date }} / {{ last_modified_date }}</p>"

	out := Substitution{}.Render(tpl, Values{
		Content:          "<p>body</p>",
		Title:            "Hello",
		PublishedDate:    "2024-01-15",
		LastModifiedDate: "2024-02-01",
	})

	assert.Equal(t, "<title>Hello</title><h1>Hello</h1><p>body</p><p>2024-01-15 / 2024-02-01</p>", out)
}

func TestSubstitution_ValuesAreNotRescanned(t *testing.T) {
	out := Substitution{}.Render("{{ content }}|{{ title }}", Values{
		Content: "literal {{ title }} in body",
		Title:   "T",
	})
	assert.Equal(t, "literal {{ title }} in body|T", out)
}

func TestSubstitution_AbsentAndUnknownTokens(t *testing.T) {
	out := Substitution{}.Render("[{{ articles }}][{{ author }}][{{title}}]", Values{})
	assert.Equal(t, "[][{{ author }}][{{title}}]", out)
}

func TestSubstitution_NoEscaping(t *testing.T) {
	out := Substitution{}.Render("{{ title }}", Values{Title: `<b>"x" & y</b>`})
	assert.Equal(t, `<b>"x" & y</b>`, out)
}

type osReader struct{}

func (osReader) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"article.html":  "A {{ content }}",
		"homepage.html": "H {{ articles }}",
		"about.html":    "B {{ content }}",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}

	paths := Paths{
		Article:  filepath.Join(dir, "article.html"),
		Homepage: filepath.Join(dir, "homepage.html"),
		About:    filepath.Join(dir, "about.html"),
	}

	set, err := Load(osReader{}, paths)
	require.NoError(t, err)
	assert.Equal(t, "A {{ content }}", set.Article)
	assert.Equal(t, "H {{ articles }}", set.Homepage)
	assert.Equal(t, "B {{ content }}", set.About)

	require.NoError(t, os.Remove(paths.About))
	_, err = Load(osReader{}, paths)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTemplateRead))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "about.html")
}
