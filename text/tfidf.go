// Package text 把商品文本属性变成定长数值向量，构成内容相似度空间。
//
// 向量化采用 TF-IDF 加权（词频-逆文档频率）：在单个文档中高频、
// 在全量语料中低频的词获得更高权重。词表覆盖 1-2 元词组，
// 容量有上限，超出时按语料词频截断。
package text

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

const (
	// DefaultMaxFeatures 词表容量上限。
	DefaultMaxFeatures = 1000
	// DefaultNGramMax 词组最大长度（1=仅单词，2=单词+二元词组）。
	DefaultNGramMax = 2
)

// Vectorizer 是拟合后的 TF-IDF 向量器：持有词表与每个词的 idf 权重。
// Fit 之后只读，可并发 Transform。
type Vectorizer struct {
	MaxFeatures int
	NGramMax    int

	vocab map[string]int // term -> 列下标
	terms []string       // 列下标 -> term
	idf   []float64
}

// NewVectorizer 创建向量器，参数 <=0 时取默认值。
func NewVectorizer(maxFeatures, ngramMax int) *Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	if ngramMax <= 0 {
		ngramMax = DefaultNGramMax
	}
	return &Vectorizer{MaxFeatures: maxFeatures, NGramMax: ngramMax}
}

// Tokenize 切词：小写化，按非字母数字边界切分，丢弃单字符 token。
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			out = append(out, f)
		}
	}
	return out
}

// ngrams 在 token 序列上展开 1..max 元词组，多词以空格连接。
func ngrams(tokens []string, max int) []string {
	if max <= 1 {
		return tokens
	}
	out := make([]string, 0, len(tokens)*max)
	for n := 1; n <= max; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

// Fit 在全量文档上拟合词表与 idf。
//
// 词表截断是确定性的：按语料总词频降序，同频按词典序升序。
// idf 采用平滑形式 ln((1+n)/(1+df)) + 1，避免除零并压低全出现词。
func (v *Vectorizer) Fit(docs []string) {
	termFreq := make(map[string]int64)
	docFreq := make(map[string]int64)

	for _, doc := range docs {
		grams := ngrams(Tokenize(doc), v.NGramMax)
		seen := make(map[string]struct{}, len(grams))
		for _, g := range grams {
			termFreq[g]++
			if _, ok := seen[g]; !ok {
				seen[g] = struct{}{}
				docFreq[g]++
			}
		}
	}

	terms := make([]string, 0, len(termFreq))
	for t := range termFreq {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if termFreq[terms[i]] != termFreq[terms[j]] {
			return termFreq[terms[i]] > termFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > v.MaxFeatures {
		terms = terms[:v.MaxFeatures]
	}
	// 词表内部按词典序排列，列下标与词一一对应且可复现
	sort.Strings(terms)

	v.terms = terms
	v.vocab = make(map[string]int, len(terms))
	for i, t := range terms {
		v.vocab[t] = i
	}

	n := float64(len(docs))
	v.idf = make([]float64, len(terms))
	for i, t := range terms {
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}
}

// Transform 将单个文档映射为 l2 归一化的 TF-IDF 向量。
// 未 Fit 或文档与词表无交集时返回全零向量。
func (v *Vectorizer) Transform(doc string) []float64 {
	row := make([]float64, len(v.terms))
	if len(v.terms) == 0 {
		return row
	}
	for _, g := range ngrams(Tokenize(doc), v.NGramMax) {
		if col, ok := v.vocab[g]; ok {
			row[col]++
		}
	}
	var norm float64
	for i := range row {
		row[i] *= v.idf[i]
		norm += row[i] * row[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range row {
			row[i] /= norm
		}
	}
	return row
}

// NumTerms 返回词表大小。
func (v *Vectorizer) NumTerms() int { return len(v.terms) }

// Terms 返回词表（列下标顺序），仅用于观测与测试。
func (v *Vectorizer) Terms() []string { return v.terms }
