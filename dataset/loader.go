// Package dataset 负责从存储侧加载商品/行为快照。
// 引擎核心不做任何磁盘或网络 I/O，快照在这里整理成内存表后再交给 Build。
package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Sanandrew123/AICommerce/core"
)

// Snapshot 是一次构建周期的完整输入：商品表 + 行为事件流。
type Snapshot struct {
	Products []core.Product
	Events   []core.BehaviorEvent
}

// Load 从 JSON 文件加载快照。两个路径都为空时回退到内置示例数据
//（开发/演示场景，原样保留线上行为）。
func Load(productsPath, eventsPath string, log *zap.Logger) (*Snapshot, error) {
	if productsPath == "" && eventsPath == "" {
		log.Info("dataset: no snapshot files configured, using sample data")
		return Sample(), nil
	}

	snap := &Snapshot{}
	if productsPath != "" {
		if err := readJSON(productsPath, &snap.Products); err != nil {
			return nil, fmt.Errorf("dataset: load products: %w", err)
		}
	}
	if eventsPath != "" {
		if err := readJSON(eventsPath, &snap.Events); err != nil {
			return nil, fmt.Errorf("dataset: load events: %w", err)
		}
	}

	log.Info("dataset: snapshot loaded",
		zap.Int("products", len(snap.Products)),
		zap.Int("events", len(snap.Events)),
	)
	return snap, nil
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		// 快照文件整体解析失败是脏数据，不同于单条坏标签的就地跳过
		return core.NewDomainError(core.ModuleDataset, core.ErrorCodeMalformedInput,
			fmt.Sprintf("dataset: malformed snapshot %s: %v", path, err))
	}
	return nil
}
