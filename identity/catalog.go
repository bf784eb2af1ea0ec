package identity

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// VariantFields holds the normalized columns that key a clinical variant.
// An empty string means the source column was absent or failed
// normalization.
type VariantFields struct {
	Chromosome      string
	Build           string
	Position        string
	ReferenceAllele string
	VariantAllele   string
	MutationType    string
	RSID            string
}

// Variant is a cached clinical variant scoped to the subject that reported
// it. Genes of interest accumulate across rows resolving to the same key;
// all other fields are fixed by the first row.
type Variant struct {
	Key             string
	Chromosome      string
	Build           string
	Position        string
	ReferenceAllele string
	VariantAllele   string
	MutationType    string
	RSID            string

	id      Identifier
	genes   map[string]struct{}
	emitted bool
}

// ID returns the variant's synthesized identifier.
func (v *Variant) ID() Identifier { return v.id }

// MarkEmitted flags the variant as emitted, reporting whether this call was
// the first. End-of-file emission checks it so a run spanning several
// variant files does not re-emit subjects carried over from earlier files.
func (v *Variant) MarkEmitted() bool {
	if v.emitted {
		return false
	}
	v.emitted = true
	return true
}

// AddGene records a gene symbol of interest. Empty symbols are ignored and
// repeats collapse.
func (v *Variant) AddGene(symbol string) {
	if symbol == "" {
		return
	}
	v.genes[symbol] = struct{}{}
}

// Genes returns the accumulated gene symbols in sorted order.
func (v *Variant) Genes() []string {
	symbols := make([]string, 0, len(v.genes))
	for s := range v.genes {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// Chromosome identifies one chromosome of one genome build.
type Chromosome struct {
	ID    Identifier
	Label string
}

var (
	chromPrefix = regexp.MustCompile(`ch(r?)[omse]*`)
	buildCURIE  = regexp.MustCompile(`\w+:`)
)

// Catalog is the per-run identity cache. Construct one per processing run
// and share it across every source file of that run; get-or-create lookups
// guarantee one entity per key. Not safe for concurrent use — a run owns
// its catalog from a single goroutine.
type Catalog struct {
	variants    map[string]map[string]*Variant
	genotypes   map[string]Identifier
	gvcs        map[string]Identifier
	rtgs        map[string]Identifier
	chromosomes map[string]Chromosome
	seen        map[string]struct{}
}

// NewCatalog returns an empty per-run catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		variants:    make(map[string]map[string]*Variant),
		genotypes:   make(map[string]Identifier),
		gvcs:        make(map[string]Identifier),
		rtgs:        make(map[string]Identifier),
		chromosomes: make(map[string]Chromosome),
		seen:        make(map[string]struct{}),
	}
}

// Variant resolves the subject-scoped variant for the given normalized
// fields, creating it on first sight. Rows sharing a complete
// (chromosome, build, position, ref, var) tuple resolve to one variant; a
// row with any of those fields empty is keyed by its data line number so
// incomplete records never collapse onto each other by partial match.
func (c *Catalog) Variant(subject string, fields VariantFields, line int) *Variant {
	key := variantKey(fields, line)
	byKey := c.variants[subject]
	if byKey == nil {
		byKey = make(map[string]*Variant)
		c.variants[subject] = byKey
	}
	if v, ok := byKey[key]; ok {
		return v
	}
	v := &Variant{
		Key:             key,
		Chromosome:      fields.Chromosome,
		Build:           fields.Build,
		Position:        fields.Position,
		ReferenceAllele: fields.ReferenceAllele,
		VariantAllele:   fields.VariantAllele,
		MutationType:    fields.MutationType,
		RSID:            fields.RSID,
		id:              NewSynthesized(Digest(key)),
		genes:           make(map[string]struct{}),
	}
	byKey[key] = v
	return v
}

func variantKey(fields VariantFields, line int) string {
	parts := []string{
		fields.Chromosome,
		fields.Build,
		fields.Position,
		fields.ReferenceAllele,
		fields.VariantAllele,
	}
	present := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			present = append(present, p)
		}
	}
	if len(present) == len(parts) {
		return strings.Join(parts, "-")
	}
	return strconv.Itoa(line) + "-" + strings.Join(present, "-")
}

// Subjects returns every subject holding cached variants, sorted.
func (c *Catalog) Subjects() []string {
	subjects := make([]string, 0, len(c.variants))
	for s := range c.variants {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	return subjects
}

// SubjectVariants returns the subject's variants sorted by key, for
// deterministic end-of-file emission.
func (c *Catalog) SubjectVariants(subject string) []*Variant {
	byKey := c.variants[subject]
	variants := make([]*Variant, 0, len(byKey))
	for _, v := range byKey {
		variants = append(variants, v)
	}
	sort.Slice(variants, func(i, j int) bool {
		return variants[i].Key < variants[j].Key
	})
	return variants
}

// Genotype resolves the subject's intrinsic genotype, creating it on first
// sight. The boolean reports creation so callers emit the entity exactly
// once per subject.
func (c *Catalog) Genotype(subject string) (Identifier, bool) {
	if id, ok := c.genotypes[subject]; ok {
		return id, false
	}
	id := NewSynthesized(Digest(subject + "-intrinsic-genotype"))
	c.genotypes[subject] = id
	return id, true
}

// GVC resolves the genomic variation complement for a set of allele
// identifiers. Members are sorted before joining, so any permutation of
// the same set resolves to one complement; source-database prefixes are
// stripped from the key after sorting.
func (c *Catalog) GVC(members []string) (Identifier, bool) {
	sorted := make([]string, len(members))
	copy(sorted, members)
	sort.Strings(sorted)
	key := strings.ReplaceAll(strings.Join(sorted, "-"), "WB:", "")
	if id, ok := c.gvcs[key]; ok {
		return id, false
	}
	id := NewSynthesized(key)
	c.gvcs[key] = id
	return id, true
}

// ReagentTargetedGene resolves the pseudo-allele for one (gene, reagent)
// pair, keyed by bare accession numbers. One entity exists per pair no
// matter how many rows reference it.
func (c *Catalog) ReagentTargetedGene(gene, reagent string) (Identifier, bool) {
	key := gene + "-" + reagent
	if id, ok := c.rtgs[key]; ok {
		return id, false
	}
	id := NewSynthesized(key)
	c.rtgs[key] = id
	return id, true
}

// Chromosome resolves the chromosome entity for a (chromosome, build)
// pair. The identifier is a genome-build-scoped CURIE so the same
// chromosome of two builds stays distinct.
func (c *Catalog) Chromosome(chrom, build string) (Chromosome, bool) {
	bare := chromPrefix.ReplaceAllString(chrom, "")
	ref := buildCURIE.ReplaceAllString(build, "")
	key := "CHR:" + ref + "chr" + bare
	if chr, ok := c.chromosomes[key]; ok {
		return chr, false
	}
	label := "chr" + bare
	if build != "" {
		label += " (" + build + ")"
	}
	chr := Chromosome{ID: NewNamed(key), Label: label}
	c.chromosomes[key] = chr
	return chr, true
}

// FirstUse reports whether the identifier has not been seen in this run,
// marking it seen. Callers use it to emit named entities and their
// structural links exactly once.
func (c *Catalog) FirstUse(id Identifier) bool {
	key := id.String()
	if _, ok := c.seen[key]; ok {
		return false
	}
	c.seen[key] = struct{}{}
	return true
}
