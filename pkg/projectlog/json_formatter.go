package projectlog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultTimestampFormat = time.RFC3339

	FieldKeyMsg   = "msg"
	FieldKeyLevel = "level"
	FieldKeyTime  = "time"
	FieldKeyFunc  = "func"
	FieldKeyFile  = "file"
	FieldModule   = "module"
)

// LogPrefixName 日志 module 字段统一标识
const LogPrefixName = "adhd_task"

// LogFormat 输出的日志结构
type LogFormat struct {
	Level    interface{} `json:"level,omitempty"`
	Module   interface{} `json:"module,omitempty"`
	Time     interface{} `json:"time,omitempty"`
	File     interface{} `json:"file,omitempty"`
	Function interface{} `json:"function,omitempty"`
	Msg      interface{} `json:"msg,omitempty"`
	Fields   interface{} `json:"fields,omitempty"`
}

// JSONFormatter logrus 的 JSON 格式化器
type JSONFormatter struct {
	// TimestampFormat 时间戳格式，默认 RFC3339
	TimestampFormat string

	// DisableTimestamp 禁用时间戳输出
	DisableTimestamp bool

	// PrettyPrint 缩进输出
	PrettyPrint bool
}

func (f *JSONFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	out := &LogFormat{
		Msg:    entry.Message,
		Level:  entry.Level.String(),
		Module: LogPrefixName,
	}

	timestampFormat := f.TimestampFormat
	if timestampFormat == "" {
		timestampFormat = defaultTimestampFormat
	}
	if !f.DisableTimestamp {
		out.Time = entry.Time.Format(timestampFormat)
	}

	if entry.HasCaller() {
		out.Function = entry.Caller.Function
		out.File = fmt.Sprintf("%s:%d", entry.Caller.File, entry.Caller.Line)
	}

	if len(entry.Data) > 0 {
		fields := make(map[string]interface{}, len(entry.Data))
		for k, v := range entry.Data {
			switch v := v.(type) {
			case error:
				// error 不转换会被 encoding/json 忽略
				// https://github.com/sirupsen/logrus/issues/137
				fields[k] = v.Error()
			default:
				fields[k] = v
			}
		}
		out.Fields = fields
	}

	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	encoder := json.NewEncoder(b)
	if f.PrettyPrint {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(out); err != nil {
		return nil, fmt.Errorf("failed to marshal fields to JSON, %v", err)
	}

	return b.Bytes(), nil
}
