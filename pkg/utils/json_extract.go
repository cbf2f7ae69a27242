package utils

import (
	"encoding/json"
	"strings"
)

// ExtractJSON 从模型返回的自由文本中提取第一个完整的 JSON 对象或数组
// 支持 ```json 代码块、前后夹杂说明文字的情况
// 返回 ok=false 表示文本中不存在可解析的 JSON
func ExtractJSON(text string) (string, bool) {
	return ExtractJSONFunc(text, nil)
}

// ExtractJSONFunc 按顺序检查候选片段（代码块优先），返回第一个合法且被 accept 接受的片段
// accept 为 nil 时接受任意合法 JSON
func ExtractJSONFunc(text string, accept func(candidate []byte) bool) (string, bool) {
	try := func(candidate string) bool {
		b := []byte(candidate)
		return json.Valid(b) && (accept == nil || accept(b))
	}

	if fenced, found := fencedBlock(text); found {
		if s, ok := scanJSON(fenced, try); ok {
			return s, true
		}
	}
	return scanJSON(text, try)
}

// fencedBlock 取第一个 ``` 代码块内容（去掉语言标记）
func fencedBlock(text string) (string, bool) {
	start := strings.Index(text, "```")
	if start == -1 {
		return "", false
	}
	rest := text[start+3:]
	// 跳过语言标记，如 json / JSON
	if nl := strings.IndexByte(rest, '\n'); nl != -1 && !strings.ContainsAny(rest[:nl], "{[") {
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, "```")
	if end == -1 {
		return rest, true
	}
	return rest[:end], true
}

type span struct{ start, end int }

// scanJSON 单次从左到右扫描括号
// 最外层配平片段优先；它不被接受或始终未配平时，再依次尝试其内部已配平的最外层子片段
func scanJSON(text string, try func(string) bool) (string, bool) {
	var (
		closers  []byte
		starts   []int
		inner    []span
		inString bool
		escaped  bool
	)

	// abandon 放弃当前候选，尝试其子片段后重置状态
	abandon := func() (string, bool) {
		for _, sp := range inner {
			if c := text[sp.start : sp.end+1]; try(c) {
				return c, true
			}
		}
		closers, starts, inner = closers[:0], starts[:0], inner[:0]
		inString, escaped = false, false
		return "", false
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]

		if len(closers) == 0 {
			switch ch {
			case '{':
				closers, starts = append(closers, '}'), append(starts, i)
			case '[':
				closers, starts = append(closers, ']'), append(starts, i)
			}
			continue
		}

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			closers, starts = append(closers, '}'), append(starts, i)
		case '[':
			closers, starts = append(closers, ']'), append(starts, i)
		case '}', ']':
			top := len(closers) - 1
			if closers[top] != ch {
				if s, ok := abandon(); ok {
					return s, true
				}
				continue
			}
			start := starts[top]
			closers, starts = closers[:top], starts[:top]

			if len(closers) == 0 {
				if c := text[start : i+1]; try(c) {
					return c, true
				}
				if s, ok := abandon(); ok {
					return s, true
				}
				continue
			}

			// 记录子片段，被当前片段包含的更深层片段移除
			for len(inner) > 0 && inner[len(inner)-1].start > start {
				inner = inner[:len(inner)-1]
			}
			inner = append(inner, span{start: start, end: i})
		}
	}

	if len(closers) > 0 {
		return abandon()
	}
	return "", false
}
