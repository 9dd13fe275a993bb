package match

// Index resolves player names across ranking sources. Entries are keyed by
// strict-normalized name, with a loose-normalized side index so that a
// suffix-only mismatch ("Tarris Reed Jr." vs "Tarris Reed") still resolves to
// the same entry instead of minting a duplicate.
type Index struct {
	strict map[string]struct{}
	loose  map[string]string
}

func NewIndex() *Index {
	return &Index{
		strict: make(map[string]struct{}),
		loose:  make(map[string]string),
	}
}

// Add registers a name and returns its strict key. The first name to claim a
// loose key owns it; later collisions keep their own strict entries.
func (ix *Index) Add(name string) string {
	key := NormalizeName(name)
	if key == "" {
		return ""
	}
	ix.strict[key] = struct{}{}

	looseKey := NormalizeNameLoose(name)
	if _, taken := ix.loose[looseKey]; !taken {
		ix.loose[looseKey] = key
	}
	return key
}

// Resolve finds the strict key an incoming name refers to: direct strict hit
// first, loose fallback second.
func (ix *Index) Resolve(name string) (string, bool) {
	key := NormalizeName(name)
	if key == "" {
		return "", false
	}
	if _, ok := ix.strict[key]; ok {
		return key, true
	}
	if strictKey, ok := ix.loose[NormalizeNameLoose(name)]; ok {
		return strictKey, true
	}
	return "", false
}
