package config

import "strings"

// Default conventions for the source layout and document format.
const (
	DefaultContentDirectory  = "content"
	DefaultDraftsDirectory   = "drafts"
	DefaultAssetsDirectory   = "assets"
	DefaultOutputDirectory   = "build"
	DefaultTemplateDirectory = "templates"
	DefaultArticleTemplate   = "article.html"
	DefaultHomepageTemplate  = "homepage.html"
	DefaultAboutTemplate     = "about.html"
	DefaultAboutSlug         = "about"
	DefaultDelineator        = "---"
	DefaultFieldSeparator    = "\n"
	DefaultKeyValueSeparator = ":"
	DefaultHighlightStyle    = "gruvbox-light"
)

// DefaultExtensions lists the recognized markdown file extensions.
var DefaultExtensions = []string{".md"}

// Defaults returns a configuration populated with every convention.
func Defaults() Site {
	return Site{
		Content: ContentConfig{
			Directory:       DefaultContentDirectory,
			DraftsDirectory: DefaultDraftsDirectory,
			AssetsDirectory: DefaultAssetsDirectory,
			OutputDirectory: DefaultOutputDirectory,
			Extensions:      append([]string(nil), DefaultExtensions...),
			AboutSlug:       DefaultAboutSlug,
		},
		Templates: TemplatesConfig{
			Directory: DefaultTemplateDirectory,
			Article:   DefaultArticleTemplate,
			Homepage:  DefaultHomepageTemplate,
			About:     DefaultAboutTemplate,
		},
		Parsing: ParsingConfig{
			ContentDelineator: DefaultDelineator,
			FieldSeparator:    DefaultFieldSeparator,
			KeyValueSeparator: DefaultKeyValueSeparator,
		},
		Markdown: MarkdownConfig{
			Emoji:          true,
			Highlight:      true,
			HighlightStyle: DefaultHighlightStyle,
		},
		Log: LoggingConfig{
			Level:  LogLevelInfo,
			Format: LogFormatText,
		},
	}
}

// applyDefaults refills values a config file explicitly blanked and normalizes enums.
func applyDefaults(s *Site) {
	d := Defaults()
	fill := func(v *string, def string) {
		if strings.TrimSpace(*v) == "" {
			*v = def
		}
	}
	fill(&s.Content.Directory, d.Content.Directory)
	fill(&s.Content.DraftsDirectory, d.Content.DraftsDirectory)
	fill(&s.Content.AssetsDirectory, d.Content.AssetsDirectory)
	fill(&s.Content.OutputDirectory, d.Content.OutputDirectory)
	fill(&s.Content.AboutSlug, d.Content.AboutSlug)
	fill(&s.Templates.Directory, d.Templates.Directory)
	fill(&s.Templates.Article, d.Templates.Article)
	fill(&s.Templates.Homepage, d.Templates.Homepage)
	fill(&s.Templates.About, d.Templates.About)
	fill(&s.Markdown.HighlightStyle, d.Markdown.HighlightStyle)
	if len(s.Content.Extensions) == 0 {
		s.Content.Extensions = d.Content.Extensions
	}
	for i, ext := range s.Content.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.Content.Extensions[i] = ext
	}
	s.Log.Level = NormalizeLogLevel(string(s.Log.Level))
	s.Log.Format = NormalizeLogFormat(string(s.Log.Format))
}
