package reek

import "gometric/internal/model"

// Normalize 把所有文件的坏味道展开后按 Source 归组。
//
// 约束说明：
// - 分组顺序为首次出现顺序，组内保持展开顺序
// - 分组键是分析器报告的路径，而不是请求时传入的路径
// - 不去重，每条坏味道恰好出现在一个 FileFinding 中
func Normalize(examinations []Examination) []model.FileFinding {
	findings := make([]model.FileFinding, 0)
	indexBySource := make(map[string]int)

	for _, item := range examinations {
		for _, smell := range item.Smells() {
			source := smell.Source()
			index, ok := indexBySource[source]
			if !ok {
				index = len(findings)
				indexBySource[source] = index
				findings = append(findings, model.FileFinding{
					FilePath:   source,
					CodeSmells: make([]model.SmellRecord, 0, 1),
				})
			}
			findings[index].CodeSmells = append(findings[index].CodeSmells, toRecord(smell))
		}
	}

	return findings
}

func toRecord(smell model.Smell) model.SmellRecord {
	return model.SmellRecord{
		Method:  smell.Context(),
		Message: smell.Message(),
		Type:    model.Category(smell),
		Lines:   smell.Lines(),
	}
}
