package utils

// Label 是推荐链路中的一等公民：可解释、可追踪、可透传。
// 本仓库用它承载 reason（推荐理由）、source（策略来源）、
// degraded_from（降级溯源）等键；合并规则保持"保留历史、可追踪"。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // recall / blend / filter / rule ...
}

// MergeLabel 用于合并同名 Label：
// - Value: 以 '|' 累积
// - Source: 以 ',' 累积
//
// 需要覆盖语义（如混排强制改写 source）时走 Item.SetLabel，不走 Merge。
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "":
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}
