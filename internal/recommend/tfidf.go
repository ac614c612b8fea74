package recommend

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// SparseVec is an index-sorted sparse vector. Vectors produced by the
// vectorizer are l2-normalized, so cosine similarity reduces to Dot.
type SparseVec struct {
	Indices []int     `json:"indices"`
	Values  []float64 `json:"values"`
}

func (v SparseVec) NNZ() int { return len(v.Indices) }

// Dot computes the inner product of two index-sorted sparse vectors.
func (v SparseVec) Dot(o SparseVec) float64 {
	sum := 0.0
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Vectorizer is a TF-IDF vector space over a fixed corpus: bounded
// vocabulary, word n-grams, document-frequency cutoffs, sublinear term
// frequency and l2 normalization. Fields are exported so a fitted state
// round-trips through the persisted model artifact.
type Vectorizer struct {
	MaxFeatures int     `json:"max_features"`
	NgramMin    int     `json:"ngram_min"`
	NgramMax    int     `json:"ngram_max"`
	MinDF       int     `json:"min_df"`
	MaxDFRatio  float64 `json:"max_df_ratio"`
	SublinearTF bool    `json:"sublinear_tf"`

	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
	DocCount   int            `json:"doc_count"`
}

func NewVectorizer() *Vectorizer {
	return &Vectorizer{
		MaxFeatures: 8000,
		NgramMin:    1,
		NgramMax:    3,
		MinDF:       1,
		MaxDFRatio:  0.90,
		SublinearTF: true,
	}
}

var errEmptyCorpus = errors.New("empty corpus")

var wordPattern = regexp.MustCompile(`\w+`)

// English stopwords applied before n-gram construction. Single-letter
// tokens are kept on purpose; they matter for tech terms.
var vectorizerStopwords = map[string]bool{
	"the": true, "is": true, "at": true, "which": true, "on": true,
	"and": true, "an": true, "as": true, "are": true, "was": true,
	"were": true, "to": true, "in": true, "for": true, "of": true,
	"with": true, "by": true, "this": true, "that": true, "these": true,
	"those": true, "will": true, "have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true, "can": true, "could": true,
	"would": true, "should": true, "you": true, "your": true, "we": true,
	"our": true, "they": true, "their": true, "it": true, "its": true,
	"be": true, "been": true, "being": true, "or": true, "from": true,
	"but": true, "not": true, "all": true, "also": true, "into": true,
	"such": true, "than": true, "then": true, "there": true, "more": true,
	"most": true, "other": true, "some": true, "any": true, "each": true,
	"about": true, "both": true, "during": true, "through": true,
}

func (vz *Vectorizer) terms(text string) []string {
	tokens := wordPattern.FindAllString(strings.ToLower(text), -1)
	kept := tokens[:0]
	for _, t := range tokens {
		if vectorizerStopwords[t] {
			continue
		}
		kept = append(kept, t)
	}

	out := make([]string, 0, len(kept)*vz.NgramMax)
	for n := vz.NgramMin; n <= vz.NgramMax; n++ {
		if n <= 0 {
			continue
		}
		for i := 0; i+n <= len(kept); i++ {
			out = append(out, strings.Join(kept[i:i+n], " "))
		}
	}
	return out
}

// Fit builds the vocabulary and IDF weights over the corpus and returns
// the per-document vectors in corpus order.
func (vz *Vectorizer) Fit(docs []string) ([]SparseVec, error) {
	if len(docs) == 0 {
		return nil, errEmptyCorpus
	}

	docTerms := make([][]string, len(docs))
	df := make(map[string]int)
	totalCount := make(map[string]int64)
	for i, d := range docs {
		ts := vz.terms(d)
		docTerms[i] = ts
		seen := make(map[string]bool, len(ts))
		for _, t := range ts {
			totalCount[t]++
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}

	maxDF := vz.MaxDFRatio * float64(len(docs))
	selected := make([]string, 0, len(df))
	for t, n := range df {
		if n < vz.MinDF {
			continue
		}
		if float64(n) > maxDF {
			continue
		}
		selected = append(selected, t)
	}
	// A tiny corpus can empty out under the max-df cutoff; keep every
	// min-df term in that case rather than failing the fit.
	if len(selected) == 0 {
		for t, n := range df {
			if n >= vz.MinDF {
				selected = append(selected, t)
			}
		}
	}
	if len(selected) == 0 {
		return nil, errors.New("empty vocabulary after frequency filtering")
	}

	if vz.MaxFeatures > 0 && len(selected) > vz.MaxFeatures {
		sort.Slice(selected, func(i, j int) bool {
			a, b := selected[i], selected[j]
			if totalCount[a] != totalCount[b] {
				return totalCount[a] > totalCount[b]
			}
			return a < b
		})
		selected = selected[:vz.MaxFeatures]
	}
	sort.Strings(selected)

	vz.Vocabulary = make(map[string]int, len(selected))
	for i, t := range selected {
		vz.Vocabulary[t] = i
	}

	vz.IDF = make([]float64, len(selected))
	n := float64(len(docs))
	for t, idx := range vz.Vocabulary {
		vz.IDF[idx] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}
	vz.DocCount = len(docs)

	vectors := make([]SparseVec, len(docs))
	for i, ts := range docTerms {
		vectors[i] = vz.vectorize(ts)
	}
	return vectors, nil
}

// Transform maps query text into the fitted space. Unknown terms are
// dropped; an all-unknown query yields the zero vector.
func (vz *Vectorizer) Transform(text string) SparseVec {
	if len(vz.Vocabulary) == 0 {
		return SparseVec{}
	}
	return vz.vectorize(vz.terms(text))
}

func (vz *Vectorizer) vectorize(terms []string) SparseVec {
	counts := make(map[int]float64)
	for _, t := range terms {
		if idx, ok := vz.Vocabulary[t]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return SparseVec{}
	}

	indices := make([]int, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	norm := 0.0
	for i, idx := range indices {
		tf := counts[idx]
		if vz.SublinearTF {
			tf = 1 + math.Log(tf)
		}
		w := tf * vz.IDF[idx]
		values[i] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range values {
			values[i] /= norm
		}
	}
	return SparseVec{Indices: indices, Values: values}
}
