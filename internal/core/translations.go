package core

// translationSet accumulates one Translation per language while keeping the
// order in which languages were first seen.
type translationSet struct {
	index map[string]int
	items []Translation
}

func newTranslationSet() *translationSet {
	return &translationSet{index: make(map[string]int)}
}

// merge applies set to the Translation for lang, creating it first if needed.
func (s *translationSet) merge(lang string, set func(*Translation)) {
	i, ok := s.index[lang]
	if !ok {
		s.items = append(s.items, Translation{Language: lang})
		i = len(s.items) - 1
		s.index[lang] = i
	}
	set(&s.items[i])
}

type translationPass struct {
	element string
	assign  func(t *Translation, text string)
}

// translations rebuilds a job's translations. Passes run title, description,
// requirements; each one scans every matching element under the job.
func (l Layout) translations(job *Node) []Translation {
	passes := []translationPass{
		{l.TitleElement, func(t *Translation, text string) { t.Title = text }},
		{l.DescriptionElement, func(t *Translation, text string) { t.Description = text }},
		{l.RequirementsElement, func(t *Translation, text string) { t.Requirements = text }},
	}

	set := newTranslationSet()
	for _, pass := range passes {
		if pass.element == "" {
			continue
		}
		for _, el := range job.FindAll(pass.element) {
			text := el.Text()
			set.merge(l.language(el), func(t *Translation) { pass.assign(t, text) })
		}
	}

	if set.items == nil {
		return []Translation{}
	}
	return set.items
}

// language returns the element's language attribute, or the default when the
// attribute is absent. A present but empty attribute is kept as-is.
func (l Layout) language(el *Node) string {
	if l.LanguageAttr != "" {
		if lang, ok := el.Attr(l.LanguageAttr); ok {
			return lang
		}
	}
	return l.DefaultLanguage
}
