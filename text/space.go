package text

import (
	"sort"

	"github.com/Sanandrew123/AICommerce/core"
)

// Scored 是一次相似度查询的单条结果。
type Scored struct {
	ProductID int64
	Score     float64
}

// Space 是内容相似度空间：商品×词项矩阵加上拟合好的向量器。
// 行顺序与构建时传入的商品顺序严格 1:1 对齐，下游策略依赖这一不变式。
// 构建完成后只读，可并发查询。
type Space struct {
	ids        []int64
	rowOf      map[int64]int
	vectorizer *Vectorizer
	matrix     [][]float64 // 每行已 l2 归一化
}

// ErrEmptyVocabulary 全部文档切不出任何词项，内容空间无法构建。
var ErrEmptyVocabulary = core.NewDomainError(
	core.ModuleText, core.ErrorCodeBuildFailure, "text: empty vocabulary, no usable tokens in any document")

// NewSpace 对齐的 (商品 id, 特征文档) 序列上构建内容空间。
// ids 与 docs 必须等长同序；词表为空视为结构性构建失败。
func NewSpace(ids []int64, docs []string, maxFeatures, ngramMax int) (*Space, error) {
	v := NewVectorizer(maxFeatures, ngramMax)
	v.Fit(docs)
	if v.NumTerms() == 0 {
		return nil, ErrEmptyVocabulary
	}

	matrix := make([][]float64, len(docs))
	for i, doc := range docs {
		matrix[i] = v.Transform(doc)
	}

	rowOf := make(map[int64]int, len(ids))
	for i, id := range ids {
		rowOf[id] = i
	}

	return &Space{
		ids:        append([]int64(nil), ids...),
		rowOf:      rowOf,
		vectorizer: v,
		matrix:     matrix,
	}, nil
}

// Similarity 计算参照商品与其余所有商品的余弦相似度，
// 按分数降序返回前 topN 个；参照商品自身被排除。
// 平分时保持原始行序（稳定排序）。未知 id 或空间未构建时返回空。
func (s *Space) Similarity(productID int64, topN int) []Scored {
	if s == nil || topN <= 0 {
		return nil
	}
	row, ok := s.rowOf[productID]
	if !ok {
		return nil
	}

	query := s.matrix[row]
	out := make([]Scored, 0, len(s.matrix)-1)
	for i, vec := range s.matrix {
		if i == row {
			continue
		}
		// 行向量均已归一化，余弦相似度退化为点积
		var dot float64
		for j := range query {
			dot += query[j] * vec[j]
		}
		out = append(out, Scored{ProductID: s.ids[i], Score: dot})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

// Row 返回商品对应的 TF-IDF 行向量，未知 id 返回 (nil, false)。
func (s *Space) Row(productID int64) ([]float64, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.rowOf[productID]
	if !ok {
		return nil, false
	}
	return s.matrix[i], true
}

// Contains 返回商品是否在空间内。
func (s *Space) Contains(productID int64) bool {
	if s == nil {
		return false
	}
	_, ok := s.rowOf[productID]
	return ok
}

// NumTerms 返回词表大小（矩阵列数）。
func (s *Space) NumTerms() int {
	if s == nil {
		return 0
	}
	return s.vectorizer.NumTerms()
}
