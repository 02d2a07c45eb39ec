package model

// Report 是 generator 输出的嵌套结果，例如 {reek: {matches: [...]}}。
// 多个 generator 的结果通过 Merge 合并成一份总报告。
type Report map[string]any

// Merge 把 other 合并进当前报告。
// 两边同名且都是 Report 的键会递归合并，其余情况以 other 为准。
func (r Report) Merge(other Report) {
	for key, value := range other {
		existing, ok := r[key].(Report)
		incoming, isReport := value.(Report)
		if ok && isReport {
			existing.Merge(incoming)
			continue
		}
		r[key] = value
	}
}
