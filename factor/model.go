// Package factor 把交互矩阵做低秩分解，产出用户/商品因子空间。
//
// 截断 SVD 的等价实现：对 Gram 矩阵 AᵀA 做对称特征分解，
// 取前 k 个特征向量 V_k，则商品因子 = V_k 的行，
// 用户因子 = A·V_k（即 U·Σ）。预测分 = 用户因子 · 商品因子。
package factor

import (
	"math"
	"sort"

	"github.com/Sanandrew123/AICommerce/behavior"
	"github.com/Sanandrew123/AICommerce/core"
)

// DefaultRankCap 分解秩上限，实际秩 = min(上限, min(行, 列) - 1)。
const DefaultRankCap = 50

// ErrModelUnavailable 因子模型无法拟合：不足 2 个用户，或可用秩为 0。
// 调用方据此降级到热门策略，不当作硬错误。
var ErrModelUnavailable = core.NewDomainError(
	core.ModuleFactor, core.ErrorCodeModelUnavailable, "factor: not enough interaction data to fit")

// Model 是拟合完成的隐因子模型。拟合后只读，可并发 Predict。
type Model struct {
	rank     int
	userOf   map[int64]int
	products []int64
	// userFactors: 用户数 × 秩；itemFactors: 商品数 × 秩
	userFactors [][]float64
	itemFactors [][]float64
}

// Fit 在交互矩阵上拟合隐因子模型。rankCap <= 0 时取默认上限 50。
// 用户数 < 2 时返回 ErrModelUnavailable。
func Fit(m *behavior.Matrix, rankCap int) (*Model, error) {
	if m.NumUsers() < 2 {
		return nil, ErrModelUnavailable
	}
	if rankCap <= 0 {
		rankCap = DefaultRankCap
	}
	rank := min(rankCap, min(m.NumUsers(), m.NumProducts())-1)
	if rank < 1 {
		return nil, ErrModelUnavailable
	}

	a := m.Rows()
	rows, cols := m.NumUsers(), m.NumProducts()

	// Gram 矩阵 G = AᵀA（商品数 × 商品数）
	gram := make([][]float64, cols)
	for i := 0; i < cols; i++ {
		gram[i] = make([]float64, cols)
	}
	for r := 0; r < rows; r++ {
		for i := 0; i < cols; i++ {
			if a[r][i] == 0 {
				continue
			}
			for j := i; j < cols; j++ {
				gram[i][j] += a[r][i] * a[r][j]
			}
		}
	}
	for i := 0; i < cols; i++ {
		for j := 0; j < i; j++ {
			gram[i][j] = gram[j][i]
		}
	}

	eig, vecs := jacobiEigen(gram)

	// 特征值降序取前 rank 个；同值时保持列下标升序，确保可复现
	order := make([]int, cols)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return eig[order[i]] > eig[order[j]] })
	order = order[:rank]

	// 商品因子 = 选中的特征向量列；符号规范化消除 ±v 二义性
	itemFactors := make([][]float64, cols)
	for i := range itemFactors {
		itemFactors[i] = make([]float64, rank)
	}
	for f, col := range order {
		maxAbs, sign := 0.0, 1.0
		for i := 0; i < cols; i++ {
			if abs := math.Abs(vecs[i][col]); abs > maxAbs {
				maxAbs = abs
				if vecs[i][col] < 0 {
					sign = -1
				} else {
					sign = 1
				}
			}
		}
		for i := 0; i < cols; i++ {
			itemFactors[i][f] = sign * vecs[i][col]
		}
	}

	// 用户因子 = A · V_k
	userFactors := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		userFactors[r] = make([]float64, rank)
		for f := 0; f < rank; f++ {
			var sum float64
			for i := 0; i < cols; i++ {
				sum += a[r][i] * itemFactors[i][f]
			}
			userFactors[r][f] = sum
		}
	}

	userOf := make(map[int64]int, rows)
	for i, u := range m.Users() {
		userOf[u] = i
	}

	return &Model{
		rank:        rank,
		userOf:      userOf,
		products:    append([]int64(nil), m.ProductIDs()...),
		userFactors: userFactors,
		itemFactors: itemFactors,
	}, nil
}

// Rank 返回分解秩。
func (m *Model) Rank() int {
	if m == nil {
		return 0
	}
	return m.rank
}

// HasUser 返回用户是否参与过拟合。
func (m *Model) HasUser(userID int64) bool {
	if m == nil {
		return false
	}
	_, ok := m.userOf[userID]
	return ok
}

// ProductIDs 返回预测向量的列顺序（与交互矩阵列序一致）。
func (m *Model) ProductIDs() []int64 {
	if m == nil {
		return nil
	}
	return m.products
}

// Predict 返回用户对全部已知商品的预测分（用户因子与各商品因子的点积），
// 顺序与 ProductIDs 对齐。用户未参与拟合时返回 (nil, false)，调用方自行降级。
func (m *Model) Predict(userID int64) ([]float64, bool) {
	if m == nil {
		return nil, false
	}
	row, ok := m.userOf[userID]
	if !ok {
		return nil, false
	}
	uf := m.userFactors[row]
	out := make([]float64, len(m.itemFactors))
	for i, itf := range m.itemFactors {
		var sum float64
		for f := 0; f < m.rank; f++ {
			sum += uf[f] * itf[f]
		}
		out[i] = sum
	}
	return out, true
}
