package factor

import "math"

const (
	jacobiMaxSweeps = 100
	jacobiEps       = 1e-12
)

// jacobiEigen 是对称矩阵的特征分解（循环 Jacobi 旋转）。
// 返回特征值切片与按列存放的特征向量矩阵。
//
// 选 Jacobi 而不是随机化 SVD 的原因：迭代顺序固定、无随机初始化，
// 相同输入必然得到相同分解，满足缓存层要求的字节一致可复现性。
// 矩阵规模是商品数×商品数，电商目录量级下完全可接受。
func jacobiEigen(a [][]float64) ([]float64, [][]float64) {
	n := len(a)
	s := make([][]float64, n)
	v := make([][]float64, n)
	for i := 0; i < n; i++ {
		s[i] = append([]float64(nil), a[i]...)
		v[i] = make([]float64, n)
		v[i][i] = 1
	}

	for sweep := 0; sweep < jacobiMaxSweeps; sweep++ {
		var off float64
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				off += s[i][j] * s[i][j]
			}
		}
		if off < jacobiEps {
			break
		}

		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				apq := s[p][q]
				if math.Abs(apq) < jacobiEps {
					continue
				}
				// 计算把 s[p][q] 旋到 0 的 Givens 旋转
				tau := (s[q][q] - s[p][p]) / (2 * apq)
				var t float64
				if tau >= 0 {
					t = 1 / (tau + math.Sqrt(1+tau*tau))
				} else {
					t = -1 / (-tau + math.Sqrt(1+tau*tau))
				}
				c := 1 / math.Sqrt(1+t*t)
				sn := t * c

				for i := 0; i < n; i++ {
					sip, siq := s[i][p], s[i][q]
					s[i][p] = c*sip - sn*siq
					s[i][q] = sn*sip + c*siq
				}
				for i := 0; i < n; i++ {
					spi, sqi := s[p][i], s[q][i]
					s[p][i] = c*spi - sn*sqi
					s[q][i] = sn*spi + c*sqi
				}
				for i := 0; i < n; i++ {
					vip, viq := v[i][p], v[i][q]
					v[i][p] = c*vip - sn*viq
					v[i][q] = sn*vip + c*viq
				}
			}
		}
	}

	eig := make([]float64, n)
	for i := 0; i < n; i++ {
		eig[i] = s[i][i]
	}
	return eig, v
}
