package model

// DecomposeRequest 任务拆解请求
type DecomposeRequest struct {
	UserTask string `json:"userTask"`           // 要拆解的任务原文（必填）
	AdhdType string `json:"adhdType,omitempty"` // 人格标签，缺失或非法时回退 combined
}

// DecomposeResponse 任务拆解响应
type DecomposeResponse struct {
	SubTasks     []string `json:"subTasks"`     // 有序子任务列表
	Explanation  string   `json:"explanation"`  // 拆解思路说明
	OriginalTask string   `json:"originalTask"` // 任务原文回显
	Subtype      string   `json:"subtype"`      // 实际采用的人格标签
}

// CredentialRequest 凭证写入请求
type CredentialRequest struct {
	APIKey string `json:"apiKey" binding:"required"`
}

// ClassifyResponse 类型评估响应
type ClassifyResponse struct {
	AdhdType    string `json:"adhdType"`   // inattentive / hyperactive / combined
	Confidence  string `json:"confidence"` // high / medium / low
	Explanation string `json:"explanation"`
}
