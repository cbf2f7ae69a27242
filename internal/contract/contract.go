// Package contract 用例指令构建与模型返回校验
// 模型输出不可信：任何结果在返回调用方之前都必须通过用例结构校验
package contract

import (
	"encoding/json"
	"fmt"
	"strings"

	"adcopy_studio_v1/internal/apperr"
	"adcopy_studio_v1/pkg/schema"
	"adcopy_studio_v1/pkg/utils"
)

// Inputs 用例入参
type Inputs map[string]string

// Request 生成请求
type Request struct {
	UseCase UseCase
	Inputs  Inputs
	// Count 生成条数，0 表示使用用例默认值
	Count int
}

// ==================== 指令构建 ====================

// BuildInstruction 校验入参并生成发送给模型的完整指令
func BuildInstruction(uc UseCase, in Inputs, count int) (string, error) {
	def, ok := Lookup(uc)
	if !ok {
		return "", apperr.Validation("use_case", fmt.Sprintf("unknown use case %q", uc))
	}

	count, err := def.validateInputs(in, count)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(def.task(in, count))
	b.WriteString("\n\nRespond with ONLY one JSON value of exactly this shape. No markdown, no commentary:\n")
	b.WriteString(schema.Describe(def.Schema))
	b.WriteString("\n\nRules:\n")
	b.WriteString("- Every field is required.\n")
	b.WriteString("- Scores are numbers from 0 to 10.\n")
	b.WriteString("- Fields listing quoted alternatives must use one of those values exactly.\n")
	if def.HasCount() {
		b.WriteString(fmt.Sprintf("- Produce exactly %d items.\n", count))
	}
	return b.String(), nil
}

// ResolveCount 计算实际生成条数（同时校验范围）
func (d *Definition) ResolveCount(count int) (int, error) {
	if !d.HasCount() {
		return 0, nil
	}
	if count == 0 {
		return d.DefaultCount, nil
	}
	if count < 1 || count > d.MaxCount {
		return 0, apperr.Validation("count", fmt.Sprintf("must be between 1 and %d", d.MaxCount))
	}
	return count, nil
}

func (d *Definition) validateInputs(in Inputs, count int) (int, error) {
	for _, name := range d.Required {
		if strings.TrimSpace(in[name]) == "" {
			return 0, apperr.Validation(name, "required input is empty")
		}
	}

	allowed := make(map[string]bool, len(d.Required)+len(d.Optional))
	for _, name := range d.Required {
		allowed[name] = true
	}
	for _, name := range d.Optional {
		allowed[name] = true
	}
	for name, val := range in {
		if !allowed[name] {
			return 0, apperr.Validation(name, "unknown input")
		}
		if enum, ok := d.InputEnums[name]; ok && val != "" && !enum.Allows(val) {
			return 0, apperr.Validation(name, fmt.Sprintf("must be one of %s", strings.Join(enum.Values(), ", ")))
		}
	}

	if d.UseCase == PolishTone {
		tones := splitList(in["tones"])
		for _, tone := range tones {
			if !Tones.Allows(tone) {
				return 0, apperr.Validation("tones", fmt.Sprintf("unknown tone %q", tone))
			}
		}
		if len(tones) > 0 {
			if len(tones) > d.MaxCount {
				return 0, apperr.Validation("tones", fmt.Sprintf("at most %d tones", d.MaxCount))
			}
			if count != 0 && count != len(tones) {
				return 0, apperr.Validation("count", fmt.Sprintf("must equal the number of tones (%d)", len(tones)))
			}
			return len(tones), nil
		}
	}

	return d.ResolveCount(count)
}

// ==================== 结果解析 ====================

// ParseResult 从模型的原始输出中提取 JSON、校验结构并解码为具体结果类型
func ParseResult(uc UseCase, raw string) (Result, error) {
	def, ok := Lookup(uc)
	if !ok {
		return nil, apperr.Validation("use_case", fmt.Sprintf("unknown use case %q", uc))
	}

	// 取第一个符合用例结构的片段，说明文字里的 [0,10] 之类不会被误当作结果
	text, ok := utils.ExtractJSONFunc(raw, func(c []byte) bool {
		return schema.ValidateJSON(def.Schema, c) == nil
	})
	if !ok {
		// 没有符合结构的片段时，按第一个合法 JSON 报告具体的结构错误
		if text, ok = utils.ExtractJSON(raw); !ok {
			return nil, apperr.MalformedResponse("no JSON value found in provider response", nil)
		}
	}
	return Decode(uc, []byte(text))
}

// Decode 校验并解码一段 JSON（用于已提取的模型输出和已保存的作品）
func Decode(uc UseCase, data []byte) (Result, error) {
	def, ok := Lookup(uc)
	if !ok {
		return nil, apperr.Validation("use_case", fmt.Sprintf("unknown use case %q", uc))
	}

	if err := schema.ValidateJSON(def.Schema, data); err != nil {
		return nil, err
	}

	result := def.newResult()
	if err := json.Unmarshal(data, result); err != nil {
		return nil, apperr.MalformedResponse("decode result", err)
	}
	return result, nil
}
