// Package behavior 把原始行为事件聚合成用户×商品的加权交互矩阵。
//
// 每条事件按行为类型映射权重（VIEW=1、CLICK=2、ADD_TO_CART=4、PURCHASE=10，
// 未知按 1），按 (用户, 商品) 分组求和，再透视成稠密表，缺失格补零。
// 矩阵随数据快照整体重建，从不增量修补。
package behavior

import (
	"sort"

	"github.com/Sanandrew123/AICommerce/core"
)

// Matrix 是聚合后的交互矩阵。行=事件集中出现过的用户，列=出现过的商品，
// 行列均按 id 升序排列以保证重建可复现。构建完成后只读。
type Matrix struct {
	users    []int64
	products []int64
	rowOf    map[int64]int
	colOf    map[int64]int
	cells    [][]float64
}

// Build 从事件流构建交互矩阵。空事件集产出空矩阵——
// 下游把它当作"协同策略不可用"，而不是错误。
func Build(events []core.BehaviorEvent) *Matrix {
	// 先分组求和，再确定行列序
	scores := make(map[int64]map[int64]float64)
	for _, ev := range events {
		row, ok := scores[ev.UserID]
		if !ok {
			row = make(map[int64]float64)
			scores[ev.UserID] = row
		}
		row[ev.ProductID] += ev.Behavior.Weight()
	}

	users := make([]int64, 0, len(scores))
	productSet := make(map[int64]struct{})
	for u, row := range scores {
		users = append(users, u)
		for p := range row {
			productSet[p] = struct{}{}
		}
	}
	products := make([]int64, 0, len(productSet))
	for p := range productSet {
		products = append(products, p)
	}
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })
	sort.Slice(products, func(i, j int) bool { return products[i] < products[j] })

	m := &Matrix{
		users:    users,
		products: products,
		rowOf:    make(map[int64]int, len(users)),
		colOf:    make(map[int64]int, len(products)),
		cells:    make([][]float64, len(users)),
	}
	for i, u := range users {
		m.rowOf[u] = i
		m.cells[i] = make([]float64, len(products))
	}
	for j, p := range products {
		m.colOf[p] = j
	}
	for u, row := range scores {
		i := m.rowOf[u]
		for p, s := range row {
			m.cells[i][m.colOf[p]] = s
		}
	}
	return m
}

// Empty 返回矩阵是否为空（无任何事件）。
func (m *Matrix) Empty() bool {
	return m == nil || len(m.users) == 0
}

// NumUsers 返回行数。
func (m *Matrix) NumUsers() int {
	if m == nil {
		return 0
	}
	return len(m.users)
}

// NumProducts 返回列数。
func (m *Matrix) NumProducts() int {
	if m == nil {
		return 0
	}
	return len(m.products)
}

// Users 返回行顺序下的用户 id。
func (m *Matrix) Users() []int64 {
	if m == nil {
		return nil
	}
	return m.users
}

// ProductIDs 返回列顺序下的商品 id。
func (m *Matrix) ProductIDs() []int64 {
	if m == nil {
		return nil
	}
	return m.products
}

// HasUser 返回用户是否出现在事件集中。
func (m *Matrix) HasUser(userID int64) bool {
	if m == nil {
		return false
	}
	_, ok := m.rowOf[userID]
	return ok
}

// UserRow 返回用户的交互行（列序与 ProductIDs 对齐）。
func (m *Matrix) UserRow(userID int64) ([]float64, bool) {
	if m == nil {
		return nil, false
	}
	i, ok := m.rowOf[userID]
	if !ok {
		return nil, false
	}
	return m.cells[i], true
}

// Score 返回 (用户, 商品) 的累计权重，任一方未知时为 0。
func (m *Matrix) Score(userID, productID int64) float64 {
	if m == nil {
		return 0
	}
	i, ok := m.rowOf[userID]
	if !ok {
		return 0
	}
	j, ok := m.colOf[productID]
	if !ok {
		return 0
	}
	return m.cells[i][j]
}

// InteractedSet 返回用户交互过（权重 > 0）的商品集合。
func (m *Matrix) InteractedSet(userID int64) map[int64]struct{} {
	out := make(map[int64]struct{})
	row, ok := m.UserRow(userID)
	if !ok {
		return out
	}
	for j, s := range row {
		if s > 0 {
			out[m.products[j]] = struct{}{}
		}
	}
	return out
}

// Rows 返回底层稠密矩阵（行=用户、列=商品），供因子分解使用。
// 调用方必须只读。
func (m *Matrix) Rows() [][]float64 {
	if m == nil {
		return nil
	}
	return m.cells
}
